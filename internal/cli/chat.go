package cli

import (
	"fmt"
	"strings"

	"github.com/isvaryam/assistant/internal/config"
	"github.com/isvaryam/assistant/internal/domain"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send one message through the dialogue stack and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			rt, err := buildRouter(cfg)
			if err != nil {
				return err
			}

			d := rt.Handle(cmd.Context(), domain.ChatRequest{
				Message: strings.Join(args, " "),
				UserID:  userID,
			})

			fmt.Println(d.Reply)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "session key (default anonymous)")

	return cmd
}
