package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"spellathon/internal/models"
)

// ReportService emails progress summaries to the administrator via
// Amazon SES. Left unconfigured it is disabled and every send becomes a
// logged no-op, so the application works offline out of the box.
type ReportService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	logger    *zap.Logger
}

// NewReportService creates a report service. An empty fromEmail yields a
// disabled service.
func NewReportService(ctx context.Context, awsRegion, fromEmail, fromName string, logger *zap.Logger) (*ReportService, error) {
	if fromEmail == "" {
		logger.Info("report service disabled: REPORT_FROM_EMAIL not configured")
		return &ReportService{enabled: false, logger: logger}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("report service enabled",
		zap.String("from", fromEmail),
		zap.String("region", awsRegion),
	)
	return &ReportService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		logger:    logger,
	}, nil
}

// IsEnabled returns whether sending is configured.
func (s *ReportService) IsEnabled() bool {
	return s.enabled
}

// SendProgressReport emails one user's score history. Disabled services
// skip silently.
func (s *ReportService) SendProgressReport(ctx context.Context, toEmail string, user *models.User) error {
	if !s.enabled {
		s.logger.Debug("skipping progress report, service disabled", zap.String("user", user.Username))
		return nil
	}

	subject := fmt.Sprintf("Spellathon progress for %s", user.RealName)
	body := BuildProgressReport(user)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send progress report: %w", err)
	}

	s.logger.Info("progress report sent",
		zap.String("user", user.Username),
		zap.String("to", toEmail),
	)
	return nil
}

// BuildProgressReport renders a user's score history as the plain-text
// report body.
func BuildProgressReport(user *models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Progress report for %s (%s)\n\n", user.RealName, user.Username)

	if len(user.Scores) == 0 {
		b.WriteString("No sessions played yet.\n")
		return b.String()
	}

	lists := lo.Keys(user.Scores)
	sort.Strings(lists)

	for _, list := range lists {
		history := user.Scores[list]
		fmt.Fprintf(&b, "%s: %d sessions, high score %d, latest %d\n",
			list, len(history), user.HighScore(list), history[len(history)-1])
	}
	return b.String()
}
