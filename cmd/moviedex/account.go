package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"moviedex/internal/auth"
	"moviedex/internal/profile"
)

type loginResult struct {
	User      auth.User `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with the demo account",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return invalidArgument(errors.New("--email and --password are required"))
			}
			ctx := cmd.Context()
			svc, err := a.authService(ctx)
			if err != nil {
				return err
			}
			sess, err := svc.Login(ctx, email, password)
			if err != nil {
				return err
			}
			u, err := svc.Current(ctx)
			if err != nil {
				return err
			}
			return a.printer.Success(loginResult{User: u, ExpiresAt: sess.ExpiresAt}, nil)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.authService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Logout(cmd.Context()); err != nil {
				return err
			}
			return a.printer.Success(map[string]bool{"logged_out": true}, nil)
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.requireUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Success(u, nil)
		},
	}
}

type profileView profile.View

func (v profileView) Table() ([]string, [][]string) {
	p := v.Profile
	return []string{"Field", "Value"}, [][]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Bio", p.Bio},
		{"Job", p.Job},
		{"Location", p.Location},
		{"Favorites", strconv.Itoa(v.Stats.Favorites)},
		{"Watchlist", strconv.Itoa(v.Stats.Watchlist)},
		{"Watched", strconv.Itoa(v.Stats.Watched)},
	}
}

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile (login required)",
	}
	cmd.AddCommand(a.profileShowCmd(), a.profileUpdateCmd())
	return cmd
}

func (a *app) profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile and list counts",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.requireUser(ctx)
			if err != nil {
				return err
			}
			svc, err := a.profileService(ctx, u)
			if err != nil {
				return err
			}
			v, err := svc.Get(ctx)
			if err != nil {
				return err
			}
			return a.printer.Success(profileView(v), nil)
		},
	}
}

func (a *app) profileUpdateCmd() *cobra.Command {
	fields := []struct {
		flag, usage string
		dst         func(*profile.UpdateCommand, *string)
	}{
		{"name", "Display name", func(c *profile.UpdateCommand, v *string) { c.Name = v }},
		{"email", "Contact email", func(c *profile.UpdateCommand, v *string) { c.Email = v }},
		{"bio", "Short bio", func(c *profile.UpdateCommand, v *string) { c.Bio = v }},
		{"job", "Job title", func(c *profile.UpdateCommand, v *string) { c.Job = v }},
		{"location", "Location", func(c *profile.UpdateCommand, v *string) { c.Location = v }},
		{"avatar", "Avatar image URL", func(c *profile.UpdateCommand, v *string) { c.Avatar = v }},
		{"cover", "Cover image URL", func(c *profile.UpdateCommand, v *string) { c.Cover = v }},
		{"profile-picture", "Profile picture URL", func(c *profile.UpdateCommand, v *string) { c.ProfilePicture = v }},
	}
	values := make([]string, len(fields))

	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Change profile fields; only the flags you pass are updated",
		Example: `  moviedex profile update --bio "Architecture student who loves movies" --location "Cairo, Egypt"`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var update profile.UpdateCommand
			for i, f := range fields {
				if cmd.Flags().Changed(f.flag) {
					f.dst(&update, &values[i])
				}
			}

			u, err := a.requireUser(ctx)
			if err != nil {
				return err
			}
			svc, err := a.profileService(ctx, u)
			if err != nil {
				return err
			}
			v, err := svc.Update(ctx, update)
			if err != nil {
				return err
			}
			return a.printer.Success(profileView(v), nil)
		},
	}
	for i, f := range fields {
		cmd.Flags().StringVar(&values[i], f.flag, "", f.usage)
	}
	return cmd
}
