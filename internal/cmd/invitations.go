package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/querycache"
)

var invitationsCmd = &cobra.Command{
	Use:     "invitations",
	Aliases: []string{"invites"},
	Short:   "Manage team invitations",
}

var invitationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sent invitations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		invitations, err := querycache.Fetch(cmd.Context(), a.cache, querycache.KeyInvitations, a.client.ListInvitations)
		if err != nil {
			return err
		}

		if len(invitations) == 0 {
			fmt.Println("No invitations.")
			return nil
		}
		for _, invitation := range invitations {
			name := invitation.RecipientName
			if name == "" {
				name = invitation.RecipientPhone
			}
			fmt.Printf("%-6d %-10s %-24s %s\n",
				invitation.ID, invitation.Status, name, invitation.InviteLink)
		}
		return nil
	},
}

var invitationsSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a team invitation",
	Long: `Send an invitation to join your team. The recipient registers with
the invite link and lands under you in the hierarchy.

Examples:
  naxum invitations send --phone +15550100 --name "New Member"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := api.CreateInvitationInput{}
		input.RecipientPhone, _ = cmd.Flags().GetString("phone")
		input.RecipientName, _ = cmd.Flags().GetString("name")
		input.RecipientEmail, _ = cmd.Flags().GetString("email")

		if input.RecipientPhone == "" {
			return errors.New(errors.ErrCodePhoneRequired, "recipient phone is required").
				WithSuggestion("Pass --phone with the recipient's phone number")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		invitation, err := querycache.Mutate(cmd.Context(), a.cache, querycache.MutationInvitationCreate,
			func(ctx context.Context) (*api.Invitation, error) {
				return a.client.CreateInvitation(ctx, input)
			})
		if err != nil {
			return err
		}

		fmt.Printf("Invitation %d sent to %s\n", invitation.ID, invitation.RecipientPhone)
		fmt.Printf("Invite link: %s\n", invitation.InviteLink)
		return nil
	},
}

func init() {
	invitationsSendCmd.Flags().String("phone", "", "recipient phone number")
	invitationsSendCmd.Flags().String("name", "", "recipient name")
	invitationsSendCmd.Flags().String("email", "", "recipient email")

	invitationsCmd.AddCommand(invitationsListCmd)
	invitationsCmd.AddCommand(invitationsSendCmd)
	rootCmd.AddCommand(invitationsCmd)
}
