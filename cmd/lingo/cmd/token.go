package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingo-backend/internal/app"
	"github.com/heartmarshall/lingo-backend/internal/auth"
	"github.com/heartmarshall/lingo-backend/internal/domain"
)

var (
	tokenRole string
	tokenTTL  time.Duration
	demote    bool
)

var tokenCmd = &cobra.Command{
	Use:   "token [learner-id]",
	Short: "Issue an access token (a new learner id when none is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		id := uuid.New()
		if len(args) == 1 {
			if id, err = uuid.Parse(args[0]); err != nil {
				return fmt.Errorf("learner id: %w", err)
			}
		}

		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.Auth.AccessTokenTTL
		}

		tm := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
		token, err := tm.IssueFor(id, domain.Role(tokenRole), ttl)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "learner: %s\n", id)
		fmt.Fprintf(out, "role:    %s\n", tokenRole)
		fmt.Fprintf(out, "expires: %s\n", time.Now().Add(ttl).UTC().Format(time.RFC3339))
		fmt.Fprintln(out, token)
		return nil
	},
}

// promoteCmd bootstraps the first admin of a deployment.
var promoteCmd = &cobra.Command{
	Use:   "promote <learner-id>",
	Short: "Grant a learner the admin role (--demote revokes it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("learner id: %w", err)
		}
		role := domain.RoleAdmin
		if demote {
			role = domain.RoleUser
		}

		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			if err := svc.Learner.SetRole(ctx, id, role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "learner %s is now %s\n", id, role)
			return nil
		})
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", domain.RoleUser.String(), "user or admin")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default auth.access_token_ttl)")
	promoteCmd.Flags().BoolVar(&demote, "demote", false, "revoke the admin role instead")
}
