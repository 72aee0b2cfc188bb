// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"lensfolio/cli/internal/auth"
	"lensfolio/cli/internal/browser"
)

var (
	loginCookies   string
	loginNoBrowser bool
	loginTimeout   time.Duration
)

// loginCmd runs the interactive login. It opens the platform login page in
// the default browser and polls the browser's cookie store until the
// session cookies appear, a challenge is detected or the timeout expires.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Log in through the browser and store the session",
	Long: `The login command opens the platform login page in your default browser and
watches that browser's cookie store (--cookies) until the session cookies appear.

Supported cookie stores are Firefox cookies.sqlite, Chrome/Chromium Cookies and
Netscape cookies.txt exports. If already logged in, the flow is skipped.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if loginCookies == "" {
			return errors.New("--cookies is required: point it at the browser profile's cookie store")
		}

		var surface auth.Surface = auth.NopSurface{}
		if !loginNoBrowser {
			surface = browser.NewSystem(nil)
		}
		a, err := loadApp(surface)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
		defer cancel()

		a.start(ctx)
		if st := a.machine.State(); st.Status == auth.Authenticated {
			pterm.Info.Printfln("Already logged in as user %s", st.Session.UserID)
			return nil
		}

		st, _ := a.machine.BeginLogin(ctx)
		fmt.Println("Log in using this link:")
		fmt.Printf("%s\n\n", a.cfg.Platform.LoginURL)

		sp := startSpinner("Waiting for login")
		unsubscribe := a.machine.Subscribe(func(s auth.State) {
			if s.Status == auth.Challenged {
				sp.update("Verification challenge detected")
			}
		})
		defer unsubscribe()
		w := &browser.Watcher{
			Path:     loginCookies,
			Domain:   a.cfg.Platform.Domain,
			Attempt:  st.Attempt,
			Interval: a.cfg.PollInterval.Duration,
			Logger:   a.log,
		}
		var saveErr error
		err = w.Run(ctx, func(nav auth.Navigation) bool {
			next, err := a.machine.OnNavigationCompleted(ctx, nav)
			if err != nil {
				// Retry on the next poll; the store may recover.
				saveErr = err
				return false
			}
			saveErr = nil
			return next.Status == auth.Authenticated || next.Status == auth.Challenged
		})
		sp.stop()

		if err != nil {
			_, _ = a.machine.CancelLogin(context.Background())
			if saveErr != nil {
				return fmt.Errorf("login timed out: %w", saveErr)
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return errors.New("login timed out; no session was captured")
			}
			return err
		}

		st = a.machine.State()
		renderState(st)
		if st.Status == auth.Challenged {
			return errors.New("login interrupted by a verification challenge")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginCookies, "cookies", "", "Browser cookie store to watch (cookies.sqlite, Cookies or cookies.txt)")
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "Do not open the browser automatically")
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "Give up after this long")
}
