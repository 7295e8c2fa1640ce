// File: cmd/bluestock/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"bluestock_client/internal/analytics"
	"bluestock_client/internal/authflow"
	"bluestock_client/internal/common"
	"bluestock_client/internal/company"
	"bluestock_client/internal/config"
	"bluestock_client/internal/gateway"
	"bluestock_client/internal/platform/logger"
	"bluestock_client/internal/routeguard"
	"bluestock_client/internal/session"
	"bluestock_client/internal/shared"
)

const usage = `Usage: bluestock <command> [flags]

Commands:
  login       Sign in and persist the session token
  register    Create an account (profile, then OTP verification)
  logout      Discard the current session
  whoami      Show the authenticated user's profile
  companies   List companies, or show one with -id
  analytics   Show aggregate company analytics
`

// cli bundles everything a command needs: the session, the auth flow
// controllers, and the API clients riding the authenticated transport.
type cli struct {
	cfg       *config.Config
	store     *session.Store
	login     *authflow.LoginController
	register  *authflow.RegistrationController
	accounts  *gateway.AccountClient
	companies *company.Client
	analytics *analytics.Client
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	zl, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync() //nolint:errcheck

	store := session.NewStore(session.NewFileStorage(cfg.TokenFilePath), zl.Named("Session"))
	store.Rehydrate()

	gw := gateway.NewHTTPClient(cfg, zl.Named("Gateway"))
	authed := &http.Client{
		Transport: gateway.NewAuthTransport(store, http.DefaultTransport, zl.Named("AuthTransport")),
		Timeout:   cfg.RequestTimeout,
	}

	app := &cli{
		cfg:       cfg,
		store:     store,
		login:     authflow.NewLoginController(gw, store, zl.Named("LoginFlow")),
		register:  authflow.NewRegistrationController(gw, store, zl.Named("RegisterFlow")),
		accounts:  gateway.NewAccountClient(cfg, authed),
		companies: company.NewClient(cfg, authed),
		analytics: analytics.NewClient(cfg, authed),
	}

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", renderError(err))
		os.Exit(1)
	}
}

func (a *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.runLogin(ctx, args)
	case "register":
		return a.runRegister(ctx, args)
	case "logout":
		a.store.Clear()
		fmt.Println("Signed out.")
		return nil
	case "whoami":
		return a.runWhoami(ctx)
	case "companies":
		return a.runCompanies(ctx, args)
	case "analytics":
		return a.runAnalytics(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// guard enforces the navigation rule table before a command runs, the same
// way the in-app router would before rendering a destination.
func (a *cli) guard(path string) error {
	decision := routeguard.Decide(a.store.Read(), path)
	if decision.Allowed {
		return nil
	}
	if decision.RedirectTo == routeguard.PathLogin {
		return errors.New("not signed in; run `bluestock login` first")
	}
	return fmt.Errorf("already signed in; destination redirects to %s", decision.RedirectTo)
}

func (a *cli) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.guard(routeguard.PathLogin); err != nil {
		return err
	}

	if err := a.login.Submit(ctx, authflow.LoginForm{Email: *email, Password: *password}); err != nil {
		return err
	}
	snap := a.store.Read()
	fmt.Printf("Signed in as %s (%s).\n", snap.Identity.FullName, snap.Identity.Email)
	return nil
}

func (a *cli) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	fullName := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	mobile := fs.String("mobile", "", "mobile number")
	gender := fs.String("gender", "", "gender (m, f or o)")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.guard(routeguard.PathRegister); err != nil {
		return err
	}

	form := authflow.ProfileForm{
		FullName:        *fullName,
		Email:           *email,
		MobileNumber:    *mobile,
		Gender:          shared.Gender(*gender),
		Password:        *password,
		ConfirmPassword: *confirm,
	}
	if err := a.register.SubmitProfile(ctx, form); err != nil {
		return err
	}
	fmt.Printf("OTP sent to %s.\n", *mobile)

	for {
		fmt.Print("Enter the 6-digit code (or `resend`): ")
		var input string
		if _, err := fmt.Scanln(&input); err != nil {
			a.register.Abandon()
			return fmt.Errorf("read code: %w", err)
		}
		if strings.EqualFold(input, "resend") {
			if err := a.register.ResendOTP(ctx); err != nil {
				return err
			}
			fmt.Println("A new code is on its way.")
			continue
		}
		if err := a.register.SubmitOTP(ctx, input); err != nil {
			if common.IsRecoverable(err) {
				fmt.Printf("That did not work: %s\n", renderError(err))
				continue
			}
			return err
		}
		break
	}

	snap := a.store.Read()
	fmt.Printf("Welcome, %s. You are signed in.\n", snap.Identity.FullName)
	return nil
}

func (a *cli) runWhoami(ctx context.Context) error {
	if err := a.guard(routeguard.PathDashboard); err != nil {
		return err
	}
	identity, err := a.accounts.Me(ctx)
	if err != nil {
		return err
	}
	// A rehydrated session starts with a bare token; fill in the
	// identity half now that the gateway has vouched for it.
	snap := a.store.Read()
	if snap.Identity.IsZero() {
		a.store.Establish(*identity, snap.Token)
	}

	fmt.Printf("Name:    %s\n", identity.FullName)
	fmt.Printf("Email:   %s\n", identity.Email)
	fmt.Printf("Mobile:  %s", identity.MobileNumber)
	if identity.IsMobileVerified {
		fmt.Print(" (verified)")
	}
	fmt.Println()
	return nil
}

func (a *cli) runCompanies(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("companies", flag.ExitOnError)
	id := fs.String("id", "", "company ID or slug to show in detail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.guard(routeguard.PathCompanies); err != nil {
		return err
	}

	if *id != "" {
		c, err := a.companies.Get(ctx, *id)
		if err != nil {
			return err
		}
		printCompany(c)
		return nil
	}

	list, err := a.companies.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range list {
		fmt.Printf("%-38s %-28s %s\n", c.ID, c.CompanyName, c.Industry)
	}
	return nil
}

func (a *cli) runAnalytics(ctx context.Context) error {
	if err := a.guard(routeguard.PathAnalytics); err != nil {
		return err
	}
	stats, err := a.analytics.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Sector distribution:")
	for _, s := range stats.SectorDistribution {
		fmt.Printf("  %-28s %d\n", s.Name, s.Value)
	}
	fmt.Println("Most pros:")
	for _, p := range stats.TopProsCompanies {
		fmt.Printf("  %-40s %d\n", p.Name, p.Count)
	}
	fmt.Println("Most cons:")
	for _, c := range stats.TopConsCompanies {
		fmt.Printf("  %-40s %d\n", c.Name, c.Count)
	}
	return nil
}

func printCompany(c *company.Company) {
	fmt.Printf("%s (%s)\n", c.CompanyName, c.Industry)
	if c.Description != "" {
		fmt.Println(c.Description)
	}
	if len(c.MLResults.Pros) > 0 {
		fmt.Println("Pros:")
		for _, p := range c.MLResults.Pros {
			fmt.Printf("  + %s: %s (%s)\n", p.Metric, p.Value, p.Year)
		}
	}
	if len(c.MLResults.Cons) > 0 {
		fmt.Println("Cons:")
		for _, p := range c.MLResults.Cons {
			fmt.Printf("  - %s: %s (%s)\n", p.Metric, p.Value, p.Year)
		}
	}
}

// renderError turns the error taxonomy into operator-facing text.
func renderError(err error) string {
	var fields common.FieldErrors
	if errors.As(err, &fields) {
		lines := make([]string, 0, len(fields))
		for f, msg := range fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", f, msg))
		}
		sort.Strings(lines)
		return "please fix the following fields:\n" + strings.Join(lines, "\n")
	}
	var rejected *common.AuthRejected
	if errors.As(err, &rejected) {
		if rejected.Reason != "" {
			return rejected.Reason
		}
		return rejected.Error()
	}
	var transport *common.TransportFailure
	if errors.As(err, &transport) {
		return "could not reach the gateway, please try again"
	}
	if errors.Is(err, common.ErrTokenExpired) {
		return "your session has expired, please sign in again"
	}
	return err.Error()
}
