package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"devconnector.com/social-network/client"
	"devconnector.com/social-network/models"
	"devconnector.com/social-network/state"
)

func (a *app) registerCmd() *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.anonymous()
			defer c.Close()

			token, err := c.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := a.saveToken(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registered as", req.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, at least 6 characters")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.anonymous()
			defer c.Close()

			token, err := c.Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := a.saveToken(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in as", req.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	return cmd
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			defer c.Close()

			s := state.InitialProfileState()
			me, err := c.Me(cmd.Context())
			if err != nil {
				s = state.ReduceProfile(s, state.ProfileErrorAction(failure(err)))
				_ = printJSON(cmd, s)
				return err
			}

			s = state.ReduceProfile(s, state.GetProfileAction(state.Profile{User: *me}))
			return printJSON(cmd, s)
		},
	}
}

func failure(err error) state.Failure {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Msg
		if msg == "" && len(apiErr.Errors) > 0 {
			msg = apiErr.Errors[0].Msg
		}
		return state.Failure{Msg: msg, Status: apiErr.Status}
	}
	return state.Failure{Msg: err.Error()}
}
