// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lensfolio/cli/internal/auth"
	"lensfolio/cli/internal/cookies"
)

var (
	navURL      string
	navCookies  string
	navCookie   []string
	navHeader   string
	navBodyFile string
	navJSON     bool
)

// navigateCmd reports a single completed navigation, as a browsing surface
// would after each page load.
var navigateCmd = &cobra.Command{
	Use:   "navigate",
	Short: "Feed one navigation event to the state machine",
	Long: `The navigate command reports one completed navigation: the URL the browser
landed on, its cookie jar and optionally the page body. A login is started
first if none is in progress.

Cookies come from a browser cookie store (--cookies), a copied Cookie request
header (--cookie-header) and/or --cookie name=value pairs for the platform
domain. Later sources are appended after earlier ones.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		nav := auth.Navigation{URL: navURL}
		if navCookies != "" {
			jar, _, err := cookies.ImportCookies(navCookies, a.cfg.Platform.Domain)
			if err != nil {
				return err
			}
			nav.Cookies = jar
		}
		extra, err := flagCookies(navHeader, navCookie, a.cfg.Platform.Domain)
		if err != nil {
			return err
		}
		nav.Cookies = append(nav.Cookies, extra...)
		if navBodyFile != "" {
			body, err := os.ReadFile(navBodyFile)
			if err != nil {
				return err
			}
			nav.Body = body
		}

		a.start(cmd.Context())
		st, err := navigate(cmd.Context(), a.machine, nav)
		if navJSON {
			if werr := writeStateJSON(cmd.OutOrStdout(), st); werr != nil {
				return werr
			}
		} else {
			renderState(st)
		}
		return err
	},
}

// flagCookies collects the jar given on the command line: the --cookie-header
// entries first, then the --cookie pairs.
func flagCookies(header string, pairs []string, domain string) ([]cookies.Cookie, error) {
	var jar []cookies.Cookie
	if strings.TrimSpace(header) != "" {
		parsed, err := cookies.ParseHeader(header, domain)
		if err != nil {
			return nil, fmt.Errorf("invalid --cookie-header: %w", err)
		}
		jar = parsed
	}
	extra, err := parseCookiePairs(pairs, domain)
	if err != nil {
		return nil, err
	}
	return append(jar, extra...), nil
}

// parseCookiePairs turns name=value flags into cookies on domain.
func parseCookiePairs(pairs []string, domain string) ([]cookies.Cookie, error) {
	var jar []cookies.Cookie
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --cookie %q, expected name=value", name)
		}
		jar = append(jar, cookies.Cookie{Name: name, Value: value, Domain: domain, Path: "/"})
	}
	return jar, nil
}

func init() {
	rootCmd.AddCommand(navigateCmd)
	navigateCmd.Flags().StringVar(&navURL, "url", "", "URL the navigation completed on")
	navigateCmd.Flags().StringVar(&navCookies, "cookies", "", "Browser cookie store to read the jar from")
	navigateCmd.Flags().StringArrayVar(&navCookie, "cookie", nil, "Cookie as name=value (repeatable)")
	navigateCmd.Flags().StringVar(&navHeader, "cookie-header", "", "Cookie request header as copied from a browser (\"a=1; b=2\")")
	navigateCmd.Flags().StringVar(&navBodyFile, "body-file", "", "File holding the rendered page body")
	navigateCmd.Flags().BoolVar(&navJSON, "json", false, "Print the resulting state as JSON")
}
