package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/ymatsuda/clinic-survey-api/internal/config"
	"github.com/ymatsuda/clinic-survey-api/internal/model"
)

// Notifier delivers admin notifications about submitted surveys.
// Delivery is blocking; callers decide whether to dispatch it off the
// request path.
type Notifier interface {
	NotifySurveySubmitted(clinicName, doctorName string, survey *model.Survey) error
}

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPNotifier builds a Notifier backed by the configured SMTP
// server, or nil when notifications are not configured.
func NewSMTPNotifier(cfg config.SMTPConfig) Notifier {
	if !cfg.Enabled() {
		return nil
	}
	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.NotifyTo,
	}
}

func (n *smtpNotifier) NotifySurveySubmitted(clinicName, doctorName string, survey *model.Survey) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", fmt.Sprintf("新しいアンケートが届きました: %s", clinicName))

	body := fmt.Sprintf(
		"院名: %s\n先生名: %s\n施術日: %s\n施術メニュー: %s\n満足度: %s\n",
		clinicName,
		doctorName,
		survey.TreatmentDate.Format("2006-01-02"),
		survey.TreatmentMenu,
		survey.Satisfaction(),
	)
	if survey.Message != nil {
		body += fmt.Sprintf("コメント: %s\n", *survey.Message)
	}
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification mail: %w", err)
	}
	return nil
}
