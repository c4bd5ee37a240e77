// Package mailio emails the run report to the survey maintainers.
package mailio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/pkg/config"
	"github.com/wneessen/go-mail"
)

type mailio struct {
	cfg config.Config
}

// New returns a new instance of Notifier.
func New(cfg config.Config) recon.Notifier {
	return &mailio{cfg: cfg}
}

// Send delivers the report over SMTP. Delivery failures are reported to the
// caller but never stop a run, the data is already committed by this point.
func (m *mailio) Send(ctx context.Context, rep recon.Report) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.MailFrom); err != nil {
		return err
	}
	if err := msg.To(m.cfg.MailTo...); err != nil {
		return err
	}
	msg.Subject(subject(rep))
	msg.SetBodyString(mail.TypeTextPlain, body(rep))

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}
	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return err
	}
	slog.Info("Sent report", "to", strings.Join(m.cfg.MailTo, ", "))
	return nil
}

func subject(rep recon.Report) string {
	res := "Springs data upload: ok"
	if rep.Failure != "" {
		res = "Springs data upload: FAILED"
	} else if rep.HasErrors() {
		res = "Springs data upload: errors"
	}
	return res
}

func body(rep recon.Report) string {
	var b strings.Builder
	b.WriteString("Data reconciliation run finished.\n\n")
	fmt.Fprintf(&b, "Started:  %s\n", rep.Started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Finished: %s\n\n", rep.Finished.Format("2006-01-02 15:04:05"))
	if rep.Failure != "" {
		fmt.Fprintf(&b, "Run aborted: %s\n\n", rep.Failure)
	}
	for _, cat := range rep.Categories {
		fmt.Fprintf(&b, "%s: %d uploaded, %d errors, %d skipped\n",
			cat.Category, len(cat.Uploaded), len(cat.Errors), len(cat.Skipped))
	}
	b.WriteString("\nDetails:\n\n")
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(rep)
	if err != nil {
		slog.Warn("Cannot encode report", "error", err)
		return b.String()
	}
	b.Write(out)
	b.WriteString("\n")
	return b.String()
}
