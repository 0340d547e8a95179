package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/josh-kwaku/pay-publicapi/internal/auth"
	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

func tokenCmd() *cobra.Command {
	var (
		accountID string
		tokenType string
		live      bool
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		Long: `Mint a bearer token for a gateway account, signed with TOKEN_SECRET.
Production tokens are issued elsewhere; this is for local and test use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("TOKEN_SECRET")
			if secret == "" {
				return errors.New("TOKEN_SECRET is not set")
			}

			tt := domain.TokenType(tokenType)
			if tt != domain.TokenTypeCard && tt != domain.TokenTypeDirectDebit {
				return fmt.Errorf("unknown token type %q", tokenType)
			}

			token, err := auth.GenerateToken(domain.Account{
				ID:        accountID,
				TokenType: tt,
				Live:      live,
			}, secret, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&accountID, "account", "a", "", "Gateway account id")
	cmd.Flags().StringVarP(&tokenType, "type", "t", string(domain.TokenTypeCard), "Token type (CARD or DIRECT_DEBIT)")
	cmd.Flags().BoolVar(&live, "live", false, "Mark the account as live")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
