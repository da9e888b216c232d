package config

import (
	"fmt"
)

// Session contains configuration for an interactive telnet session.
type Session struct {
	Login    string
	Password string
	Raw      bool
	LogFile  string
}

func (sCfg *Session) Validate() []error {
	var errors []error

	if sCfg.Password != "" && sCfg.Login == "" {
		errors = append(errors, fmt.Errorf("'--password' requires '--login'"))
	}

	return errors
}

// WantsLogin reports whether the session should run login automation
// before handing the console to the user.
func (sCfg *Session) WantsLogin() bool {
	return sCfg.Login != ""
}
