package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"spellathon/internal/config"
	"spellathon/internal/excel"
	"spellathon/internal/game"
	"spellathon/internal/models"
	"spellathon/internal/repository"
	"spellathon/internal/service"
	"spellathon/internal/tldr"
)

// App is the terminal front end. It owns the menu loop and drives one
// session at a time.
type App struct {
	cfg     *config.Config
	auth    *service.AuthService
	lists   *service.ListService
	reports *service.ReportService
	users   *repository.UserManager
	speaker game.Speaker
	logger  *zap.Logger
	reader  *bufio.Reader
}

// NewApp wires the front end together.
func NewApp(cfg *config.Config, auth *service.AuthService, lists *service.ListService, reports *service.ReportService, users *repository.UserManager, speaker game.Speaker, logger *zap.Logger) *App {
	return &App{
		cfg:     cfg,
		auth:    auth,
		lists:   lists,
		reports: reports,
		users:   users,
		speaker: speaker,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
	}
}

// Run starts the menu loop. The first run walks through administrator
// setup before anything else is allowed.
func (a *App) Run() error {
	fmt.Println("Welcome to Spellathon")

	configured, err := a.auth.AdminConfigured()
	if err != nil {
		return err
	}
	if !configured {
		if err := a.setupAdmin(); err != nil {
			return err
		}
	}

	for {
		fmt.Println()
		fmt.Println("1) Log in and practise")
		fmt.Println("2) Register a new user")
		fmt.Println("3) Administration")
		fmt.Println("q) Quit")

		switch a.prompt("> ") {
		case "1":
			a.loginAndPlay()
		case "2":
			a.register()
		case "3":
			a.adminMenu()
		case "q", "Q":
			a.speaker.Stop()
			return nil
		}
	}
}

func (a *App) prompt(label string) string {
	fmt.Print(label)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (a *App) setupAdmin() error {
	fmt.Println()
	fmt.Println("No administrator account exists yet. Let's create one.")

	for {
		username := a.prompt("Username: ")
		realName := a.prompt("Real name: ")
		password := a.prompt("Password: ")
		confirm := a.prompt("Confirm password: ")
		birthday := a.prompt("Birthday (YYYY-MM-DD, optional): ")

		_, err := a.auth.CreateAdmin(username, realName, password, confirm, birthday)
		if err == nil {
			fmt.Println("Administrator account created.")
			return nil
		}
		fmt.Printf("Could not create the account: %v\n", err)
	}
}

func (a *App) register() {
	username := a.prompt("Username: ")
	realName := a.prompt("Real name: ")
	password := a.prompt("Password: ")
	confirm := a.prompt("Confirm password: ")
	birthday := a.prompt("Birthday (YYYY-MM-DD, optional): ")

	if _, err := a.auth.Register(username, realName, password, confirm, birthday, ""); err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		return
	}
	fmt.Printf("Welcome, %s! You can now log in and practise.\n", username)
}

func (a *App) loginAndPlay() {
	username := a.prompt("Username: ")
	password := a.prompt("Password: ")

	user, err := a.auth.Login(username, password)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}

	for {
		fmt.Println()
		fmt.Printf("Hello %s\n", user.RealName)
		fmt.Println("1) Practise a list")
		fmt.Println("2) My scores")
		fmt.Println("b) Back")

		switch a.prompt("> ") {
		case "1":
			a.play(user)
		case "2":
			a.showScores(user)
		case "b", "B":
			return
		}
	}
}

func (a *App) chooseList() (*models.WordList, bool) {
	summaries, err := a.lists.Summaries()
	if err != nil {
		fmt.Printf("Could not read the word lists: %v\n", err)
		return nil, false
	}
	if len(summaries) == 0 {
		fmt.Println("There are no word lists yet. Ask the administrator to create one.")
		return nil, false
	}

	fmt.Println("Available lists:")
	for i, s := range summaries {
		fmt.Printf("%d) %s (%d words, avg length %.1f, edited %s)\n", i+1, s.Name, s.Words, s.AvgWordLength, s.DateEdited)
	}

	choice := a.prompt("List number: ")
	var idx int
	if _, err := fmt.Sscanf(choice, "%d", &idx); err != nil || idx < 1 || idx > len(summaries) {
		fmt.Println("That isn't one of the lists.")
		return nil, false
	}

	list, err := a.lists.List(summaries[idx-1].Name)
	if err != nil {
		fmt.Printf("Could not load the list: %v\n", err)
		return nil, false
	}
	return list, true
}

func (a *App) play(user *models.User) {
	list, ok := a.chooseList()
	if !ok {
		return
	}
	if list.Len() == 0 {
		fmt.Println("That list has no words in it yet.")
		return
	}

	session := game.NewSession(list, user, a.users, a.speaker, &consoleObserver{}, a.logger)

	fmt.Println()
	fmt.Println("Type each word as you hear it.")
	fmt.Println("Commands: !again (hear the word), !example (hear the sentence), !quit (finish early)")
	a.runSession(session)
}

// runSession drives one session from the prompt until it ends. The
// speaker is stopped on every exit path so an interrupted session does
// not leave speech running.
func (a *App) runSession(session *game.Session) {
	defer a.speaker.Stop()

	session.Start()
	for session.State() == game.InProgress {
		submission := a.prompt("Spell: ")
		switch submission {
		case "!again":
			session.SpeakWord()
		case "!example":
			session.SpeakExample()
		case "!quit":
			if err := session.End(); err != nil {
				fmt.Printf("Could not save the session: %v\n", err)
			}
		default:
			if _, err := session.Check(submission); err != nil {
				fmt.Printf("Could not save the session: %v\n", err)
				return
			}
		}
	}
}

func (a *App) showScores(user *models.User) {
	if len(user.Scores) == 0 {
		fmt.Println("No sessions played yet.")
		return
	}
	fmt.Print(service.BuildProgressReport(user))
}

func (a *App) adminMenu() {
	username := a.prompt("Administrator username: ")
	password := a.prompt("Password: ")

	token, err := a.auth.Authorise(username, password)
	if err != nil {
		fmt.Printf("Authorisation failed: %v\n", err)
		return
	}

	for {
		if _, err := a.auth.VerifyAdmin(token); err != nil {
			fmt.Println("Your administrator session has expired. Please log in again.")
			return
		}

		fmt.Println()
		fmt.Println("Administration")
		fmt.Println("1) Create a word list")
		fmt.Println("2) Add a word to a list")
		fmt.Println("3) Remove a word from a list")
		fmt.Println("4) Import a list (.tldr)")
		fmt.Println("5) Import words from a spreadsheet")
		fmt.Println("6) Export a list")
		fmt.Println("7) Delete a list")
		fmt.Println("8) Words by difficulty")
		fmt.Println("9) Users and progress reports")
		fmt.Println("b) Back")

		switch a.prompt("> ") {
		case "1":
			a.createList(username)
		case "2":
			a.addWord()
		case "3":
			a.removeWord()
		case "4":
			a.importList()
		case "5":
			a.importSpreadsheet(username)
		case "6":
			a.exportList()
		case "7":
			a.deleteList()
		case "8":
			a.wordsByDifficulty()
		case "9":
			a.userMenu()
		case "b", "B":
			return
		}
	}
}

func (a *App) createList(author string) {
	name := a.prompt("List name: ")
	if err := a.lists.CreateList(name, author); err != nil {
		fmt.Printf("Could not create the list: %v\n", err)
		return
	}
	fmt.Printf("Created %q.\n", name)
}

func (a *App) addWord() {
	listName := a.prompt("List name: ")
	text := a.prompt("Word: ")
	definition := a.prompt("Definition (optional): ")
	example := a.prompt("Example sentence (optional): ")
	difficulty := models.Difficulty(strings.ToUpper(a.prompt("Difficulty (CL1-CL8, AL1, AL2, blank for none): ")))
	if difficulty != "" && !difficulty.Valid() {
		fmt.Println("Unknown difficulty label.")
		return
	}

	word := models.NewWord(text, definition, example, difficulty)
	if err := a.lists.AddWord(listName, word); err != nil {
		fmt.Printf("Could not add the word: %v\n", err)
		return
	}
	fmt.Printf("Added %q to %q.\n", text, listName)
}

func (a *App) removeWord() {
	listName := a.prompt("List name: ")
	text := a.prompt("Word: ")
	if err := a.lists.RemoveWord(listName, text); err != nil {
		fmt.Printf("Could not remove the word: %v\n", err)
		return
	}
	fmt.Printf("Removed %q from %q.\n", text, listName)
}

func (a *App) importList() {
	path := a.prompt("Path to the " + tldr.Extension + " file: ")
	if err := a.lists.ImportList(path); err != nil {
		if errors.Is(err, tldr.ErrListExists) {
			fmt.Println("A list with that name already exists.")
			return
		}
		fmt.Printf("Import failed: %v\n", err)
		return
	}
	fmt.Println("List imported.")
}

func (a *App) importSpreadsheet(author string) {
	path := a.prompt("Path to the .xlsx or .csv file: ")
	listName := a.prompt("Name for the new list: ")

	words, result, err := excel.ImportWords(excel.DefaultImportConfig(path))
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		return
	}
	for _, e := range result.Errors {
		fmt.Printf("  warning: %s\n", e)
	}
	if len(words) == 0 {
		fmt.Println("The file contained no words.")
		return
	}

	if err := a.lists.CreateList(listName, author); err != nil {
		fmt.Printf("Could not create the list: %v\n", err)
		return
	}
	added := 0
	for _, word := range words {
		if err := a.lists.AddWord(listName, word); err != nil {
			if errors.Is(err, service.ErrWordInList) {
				continue
			}
			fmt.Printf("Could not add %q: %v\n", word.Text, err)
			continue
		}
		added++
	}
	fmt.Printf("Imported %d of %d words into %q.\n", added, result.TotalProcessed, listName)
}

func (a *App) exportList() {
	name := a.prompt("List name: ")
	dest := a.prompt("Destination path: ")
	if err := a.lists.ExportList(name, dest); err != nil {
		fmt.Printf("Export failed: %v\n", err)
		return
	}
	fmt.Printf("Exported %q to %s.\n", name, dest)
}

func (a *App) deleteList() {
	name := a.prompt("List name: ")
	if a.prompt(fmt.Sprintf("Really delete %q? (yes/no): ", name)) != "yes" {
		return
	}
	if err := a.lists.DeleteList(name); err != nil {
		fmt.Printf("Could not delete the list: %v\n", err)
		return
	}
	fmt.Printf("Moved %q to the trash directory.\n", name)
}

func (a *App) wordsByDifficulty() {
	difficulty := models.Difficulty(strings.ToUpper(a.prompt("Difficulty (CL1-CL8, AL1, AL2): ")))
	if !difficulty.Valid() {
		fmt.Println("Unknown difficulty label.")
		return
	}
	words, err := a.lists.WordsOfDifficulty(difficulty)
	if err != nil {
		fmt.Printf("Could not read the words: %v\n", err)
		return
	}
	if len(words) == 0 {
		fmt.Println("No stored words carry that label.")
		return
	}
	for _, w := range words {
		fmt.Printf("  %s - %s\n", w.Text, w.Definition)
	}
}

func (a *App) userMenu() {
	usernames, err := a.users.Usernames()
	if err != nil {
		fmt.Printf("Could not list users: %v\n", err)
		return
	}
	fmt.Printf("Registered users: %s\n", strings.Join(usernames, ", "))

	fmt.Println("1) Show a user's progress")
	fmt.Println("2) Email a progress report")
	fmt.Println("3) Remove a user")
	fmt.Println("b) Back")

	switch a.prompt("> ") {
	case "1":
		a.showUserProgress()
	case "2":
		a.emailReport()
	case "3":
		a.removeUser()
	}
}

func (a *App) lookupUser(username string) *models.User {
	user, err := a.users.Retrieve(username)
	if err != nil {
		fmt.Printf("Could not look up the user: %v\n", err)
		return nil
	}
	if user == nil {
		fmt.Printf("No user called %q.\n", username)
		return nil
	}
	return user
}

func (a *App) showUserProgress() {
	user := a.lookupUser(a.prompt("Username: "))
	if user == nil {
		return
	}
	fmt.Print(service.BuildProgressReport(user))
}

func (a *App) emailReport() {
	if !a.reports.IsEnabled() {
		fmt.Println("Email reports are not configured. Set REPORT_FROM_EMAIL to enable them.")
		return
	}
	user := a.lookupUser(a.prompt("Username: "))
	if user == nil {
		return
	}
	to := a.prompt(fmt.Sprintf("Send to [%s]: ", a.cfg.ReportTo))
	if to == "" {
		to = a.cfg.ReportTo
	}
	if to == "" {
		fmt.Println("No destination address.")
		return
	}
	if err := a.reports.SendProgressReport(context.Background(), to, user); err != nil {
		fmt.Printf("Could not send the report: %v\n", err)
		return
	}
	fmt.Printf("Report for %s sent to %s.\n", user.Username, to)
}

func (a *App) removeUser() {
	username := a.prompt("Username: ")
	if a.prompt(fmt.Sprintf("Really remove %q and their scores? (yes/no): ", username)) != "yes" {
		return
	}
	if err := a.users.Remove(username); err != nil {
		fmt.Printf("Could not remove the user: %v\n", err)
		return
	}
	if err := a.users.Commit(); err != nil {
		fmt.Printf("Could not commit the removal: %v\n", err)
		return
	}
	fmt.Printf("Removed %q.\n", username)
}

// consoleObserver renders session progress on stdout.
type consoleObserver struct{}

func (o *consoleObserver) SessionUpdated(definition, score, highScore string, last game.Outcome) {
	switch last {
	case game.OutcomeCorrect:
		fmt.Println("Correct!")
	case game.OutcomeWrong:
		fmt.Println("Not quite.")
	}

	fmt.Printf("\nScore %s (best %s)\n", score, highScore)
	if definition != "" {
		fmt.Printf("Hint: %s\n", definition)
	}
}

func (o *consoleObserver) SessionEnded(score, highScore string, newHighScore bool, attempts []game.Attempt) {
	fmt.Println()
	fmt.Printf("Session over. You scored %s.\n", score)
	if newHighScore {
		fmt.Printf("New high score: %s!\n", highScore)
	}
	for _, attempt := range attempts {
		marker := "x"
		if attempt.Submission == attempt.Word {
			marker = "ok"
		}
		fmt.Printf("  %-4s %s -> %s\n", marker, attempt.Word, attempt.Submission)
	}
}
