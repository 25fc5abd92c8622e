// Package notify builds the message sent to the submitter once a record has
// been created. Sending it is left to the caller.
package notify

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Sender is the display name messages are sent from.
const Sender = "SQA Data System"

// Summary is what the message says about a new record.
type Summary struct {
	RecordKey   string
	SubmittedAt time.Time

	// Location is where the record can be opened, a file path or URL.
	// Leave empty when the store can't say.
	Location string

	Recipient string
}

// Recipients parses Recipient, which may hold several comma separated
// addresses.
func (s Summary) Recipients() ([]string, error) {
	if strings.TrimSpace(s.Recipient) == "" {
		return nil, errors.New("no recipient")
	}

	list, err := mail.ParseAddressList(s.Recipient)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid recipient '%s'", s.Recipient)
	}

	addresses := make([]string, 0, len(list))
	for _, a := range list {
		addresses = append(addresses, a.Address)
	}
	return addresses, nil
}

// Message returns the subject and plain text body.
func (s Summary) Message() (subject, body string) {
	subject = "New SQA Data Submission - " + s.RecordKey

	var b strings.Builder
	b.WriteString("A new SQA data submission has been recorded.\n\n")
	fmt.Fprintf(&b, "Sheet Name: %s\n", s.RecordKey)
	fmt.Fprintf(&b, "Date: %s\n\n", s.SubmittedAt.Format("1/2/2006"))
	if s.Location != "" {
		fmt.Fprintf(&b, "You can access the record here: %s\n\n", s.Location)
	}
	b.WriteString("This is an automated message.")

	return subject, b.String()
}
