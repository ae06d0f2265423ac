package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/classboard/internal/domain"
	"github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/group"
	"github.com/mrz1836/classboard/internal/logging"
	"github.com/mrz1836/classboard/internal/tui"
)

// addGroupCommand adds the group command and its subcommands.
func addGroupCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage the groups of a stored project",
	}
	cmd.AddCommand(newGroupAddMemberCmd(a), newGroupRemoveMemberCmd(a))
	root.AddCommand(cmd)
}

// memberOptions holds the flags of the member subcommands.
type memberOptions struct {
	projectID string
	groupID   string
	member    domain.Member
}

// MemberResponse is the JSON output of the member subcommands.
type MemberResponse struct {
	ProjectID string `json:"projectId"`
	GroupID   string `json:"groupId"`
	UserID    string `json:"userId"`
	Remaining int    `json:"remaining"`
}

func newGroupAddMemberCmd(a *app) *cobra.Command {
	var opts memberOptions

	cmd := &cobra.Command{
		Use:   "add-member",
		Short: "Add a student to a group",
		Long: `Add a student to a group of a stored project. The group must have room
left (default capacity 5) and the student must not belong to another group of
the project.

Example:
  classboard group add-member --project-id web-2024 --group g1 \
    --user-id u7 --nom Martin --prenom Alice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGroupAddMember(cmd.Context(), a, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.projectID, "project-id", "", "id of the stored project")
	cmd.Flags().StringVar(&opts.groupID, "group", "", "group id")
	cmd.Flags().StringVar(&opts.member.UserID, "user-id", "", "student user id")
	cmd.Flags().StringVar(&opts.member.LastName, "nom", "", "student last name")
	cmd.Flags().StringVar(&opts.member.FirstName, "prenom", "", "student first name")
	cmd.Flags().StringVar(&opts.member.Email, "email", "", "student e-mail")
	for _, name := range []string{"project-id", "group", "user-id", "nom", "prenom"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runGroupAddMember(ctx context.Context, a *app, opts memberOptions, w io.Writer) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	capacity := a.cfg.Rules.DefaultGroupCapacity

	resp := MemberResponse{ProjectID: opts.projectID, GroupID: opts.groupID, UserID: opts.member.UserID}
	_, err = store.Modify(ctx, opts.projectID, func(p *domain.Project) error {
		if err := group.AddToProject(p, opts.groupID, opts.member, capacity); err != nil {
			return err
		}
		g, _ := p.Group(opts.groupID)
		resp.Remaining = group.Remaining(*g, capacity)
		return nil
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("project_id", opts.projectID).
		Str("group_id", opts.groupID).
		Str("user_id", opts.member.UserID).
		Str("email", logging.SafeValue("email", opts.member.Email)).
		Msg("member added")

	out := a.output(w)
	if tui.IsJSON(out) {
		return out.JSON(resp)
	}
	out.Success(fmt.Sprintf("%s ajouté(e) au groupe %s (%d place(s) restante(s)).",
		opts.member.FullName(), opts.groupID, resp.Remaining))
	return nil
}

func newGroupRemoveMemberCmd(a *app) *cobra.Command {
	var opts memberOptions

	cmd := &cobra.Command{
		Use:   "remove-member",
		Short: "Remove a student from a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGroupRemoveMember(cmd.Context(), a, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.projectID, "project-id", "", "id of the stored project")
	cmd.Flags().StringVar(&opts.groupID, "group", "", "group id")
	cmd.Flags().StringVar(&opts.member.UserID, "user-id", "", "student user id")
	for _, name := range []string{"project-id", "group", "user-id"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runGroupRemoveMember(ctx context.Context, a *app, opts memberOptions, w io.Writer) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	capacity := a.cfg.Rules.DefaultGroupCapacity

	resp := MemberResponse{ProjectID: opts.projectID, GroupID: opts.groupID, UserID: opts.member.UserID}
	_, err = store.Modify(ctx, opts.projectID, func(p *domain.Project) error {
		g, ok := p.Group(opts.groupID)
		if !ok {
			return fmt.Errorf("group '%s': %w", opts.groupID, errors.ErrGroupNotFound)
		}
		if err := group.RemoveMember(g, opts.member.UserID); err != nil {
			return err
		}
		resp.Remaining = group.Remaining(*g, capacity)
		return nil
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("project_id", opts.projectID).
		Str("group_id", opts.groupID).
		Str("user_id", opts.member.UserID).
		Msg("member removed")

	out := a.output(w)
	if tui.IsJSON(out) {
		return out.JSON(resp)
	}
	out.Success(fmt.Sprintf("%s retiré(e) du groupe %s.", opts.member.UserID, opts.groupID))
	return nil
}
