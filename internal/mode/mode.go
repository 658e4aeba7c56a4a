// Package mode defines the page controllers' shared messages and services.
package mode

import (
	"github.com/jufengpp/signup/internal/config"
	"github.com/jufengpp/signup/internal/members"
	"github.com/jufengpp/signup/internal/slots"
	"github.com/jufengpp/signup/internal/submit"
	"github.com/jufengpp/signup/internal/timegate"
	"github.com/jufengpp/signup/internal/ui/toaster"
)

// Page identifies the page on screen.
type Page int

const (
	PageActivity Page = iota
	PageMembers
)

func (p Page) String() string {
	if p == PageMembers {
		return "members"
	}
	return "activity"
}

// Services contains shared dependencies injected into page controllers.
type Services struct {
	Config    *config.Config
	Gate      *timegate.Gate
	Tracker   *slots.Tracker
	Submitter *submit.Submitter
	Members   *members.Service
}

// ShowToastMsg asks the app to show a toast. Pages never own the toaster.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}
