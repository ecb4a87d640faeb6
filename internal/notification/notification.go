// Package notification sends the "request queued for review" notice to users
// whose join request could not be resolved automatically.
package notification

import "fmt"

const TemplateUnableToAutoJoin = "unable-to-auto-join-organization"

// UnableToAutoJoinSubject is the subject line of the notice for an
// organization displayed as label.
func UnableToAutoJoinSubject(label string) string {
	return fmt.Sprintf("[MonComptePro] Demande pour rejoindre %s", label)
}

// Message is a templated transactional email.
type Message struct {
	To       string
	Subject  string
	Template string
	Params   map[string]string
}

func unableToAutoJoin(to, label string) Message {
	return Message{
		To:       to,
		Subject:  UnableToAutoJoinSubject(label),
		Template: TemplateUnableToAutoJoin,
		Params:   map[string]string{"libelle": label},
	}
}
