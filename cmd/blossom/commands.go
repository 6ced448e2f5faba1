package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blossomapp/client/api/transport"
	"github.com/blossomapp/client/domain"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the stored session and report its state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Resolve(cmd.Context())
			snap := a.session.Snapshot()
			if snap.Authenticated {
				name := "(profile pending)"
				if snap.User != nil {
					name = snap.User.DisplayName()
				}
				fmt.Printf("signed in as %s\n", name)
			} else {
				fmt.Println("signed out")
			}
			fmt.Printf("current route: %s\n", a.nav.Current())
			return nil
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.api.Register(cmd.Context(), transport.RegisterRequest{
				Email:    args[0],
				Password: args[1],
				Name:     name,
			})
			if err != nil {
				return err
			}
			if err := a.session.Login(cmd.Context(), resp.AccessToken, resp.User); err != nil {
				return err
			}
			fmt.Printf("welcome, %s\n", resp.User.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in with email and password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.api.LoginUser(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := a.session.Login(cmd.Context(), resp.AccessToken, resp.User); err != nil {
				return err
			}
			fmt.Printf("signed in as %s\n", resp.User.DisplayName())
			return nil
		},
	}
}

func newOAuthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "oauth <session-id>",
		Short: "Exchange an OAuth session ID for a Blossom session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.api.SessionData(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.session.SetToken(cmd.Context(), data.SessionToken); err != nil {
				return err
			}
			user, err := a.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			a.session.SetUser(user)
			fmt.Printf("signed in as %s\n", user.DisplayName())
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Remote logout is best-effort: local clearing always proceeds.
			if err := a.api.LogoutUser(cmd.Context()); err != nil {
				a.logger.Warn("remote logout failed", zap.Error(err))
			}
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", user.DisplayName(), user.Email)
			if user.PregnancyStage != "" {
				fmt.Printf("stage: %s\n", user.PregnancyStage)
			}
			if user.IsPremium {
				fmt.Println("premium member")
			}
			return nil
		},
	}
}

func newFeedCmd(a *app) *cobra.Command {
	var category string
	var limit int
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the community feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := a.api.Posts(cmd.Context(), transport.PostQuery{
				Category: category,
				Limit:    limit,
			})
			if err != nil {
				return err
			}
			for _, p := range posts {
				fmt.Printf("[%s] %s — %s (%d likes, %d comments)\n",
					p.Category, p.Title, p.AuthorName, p.LikesCount, p.CommentsCount)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum posts")
	return cmd
}

func newForumsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forums",
		Short: "List discussion forums",
		RunE: func(cmd *cobra.Command, args []string) error {
			forums, err := a.api.Forums(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range forums {
				fmt.Printf("%s — %s (%d posts)\n", f.Name, f.Description, f.PostsCount)
			}
			return nil
		},
	}
}

func newGroupsCmd(a *app) *cobra.Command {
	var join string
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List or join support groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			if join != "" {
				if err := a.api.JoinSupportGroup(cmd.Context(), join); err != nil {
					return err
				}
				fmt.Println("joined group")
				return nil
			}
			groups, err := a.api.SupportGroups(cmd.Context())
			if err != nil {
				return err
			}
			for _, g := range groups {
				fmt.Printf("%s [%s] — %d members\n", g.Name, g.Theme, len(g.Members))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&join, "join", "", "group ID to join")
	return cmd
}

func newMilestonesCmd(a *app) *cobra.Command {
	var complete string
	var notes string
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "List or complete milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			if complete != "" {
				m, err := a.api.CompleteMilestone(cmd.Context(), complete, notes)
				if err != nil {
					return err
				}
				fmt.Printf("completed: %s\n", m.Title)
				return nil
			}
			milestones, err := a.api.Milestones(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range milestones {
				mark := " "
				if m.Completed {
					mark = "x"
				}
				fmt.Printf("[%s] %s (%s, %d months)\n", mark, m.Title, m.ChildName, m.AgeMonths)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&complete, "complete", "", "milestone ID to complete")
	cmd.Flags().StringVar(&notes, "notes", "", "completion notes")
	return cmd
}

func newResourcesCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Browse the resource library",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := a.api.Resources(cmd.Context(), category)
			if err != nil {
				return err
			}
			for _, r := range resources {
				premium := ""
				if r.IsPremium {
					premium = " [premium]"
				}
				fmt.Printf("%s (%s) by %s%s\n", r.Title, r.ResourceType, r.Author, premium)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	return cmd
}

func newMessagesCmd(a *app) *cobra.Command {
	var to string
	var limit int
	cmd := &cobra.Command{
		Use:   "messages [conversation-id]",
		Short: "List conversations, read one, or send a direct message",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to != "" {
				if len(args) == 0 {
					return fmt.Errorf("--to requires the message content as an argument")
				}
				msg, err := a.api.SendMessage(cmd.Context(), transport.MessageSendRequest{
					RecipientID: to,
					Content:     args[0],
				})
				if err != nil {
					return err
				}
				fmt.Printf("sent to conversation %s\n", msg.ConversationID)
				return nil
			}
			if len(args) == 1 {
				msgs, err := a.api.Messages(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				for _, m := range msgs {
					fmt.Printf("%s [%s] %s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.SenderName, m.Content)
				}
				return nil
			}
			convs, err := a.api.Conversations(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range convs {
				unread := ""
				if c.UnreadCount > 0 {
					unread = fmt.Sprintf(" (%d unread)", c.UnreadCount)
				}
				fmt.Printf("%s — %s%s\n", c.ConversationID, c.LastMessage, unread)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient user ID; the positional argument becomes the message")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum messages to read")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var interests, stage string
	var limit int
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the member directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := transport.UserSearchQuery{Interests: interests, PregnancyStage: stage, Limit: limit}
			if len(args) == 1 {
				q.Query = args[0]
			}
			users, err := a.api.SearchUsers(cmd.Context(), q)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Printf("%s — %s\n", u.UserID, u.DisplayName())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&interests, "interests", "", "comma-separated interests filter")
	cmd.Flags().StringVar(&stage, "stage", "", "pregnancy stage filter")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum results")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	var name, bio, stage, dueDate string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.api.UpdateProfile(cmd.Context(), transport.ProfileUpdateRequest{
				Name:           name,
				Bio:            bio,
				PregnancyStage: stage,
				DueDate:        dueDate,
			})
			if err != nil {
				return err
			}
			a.session.SetUser(user)
			fmt.Printf("profile updated for %s\n", user.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&bio, "bio", "", "profile bio")
	cmd.Flags().StringVar(&stage, "stage", "", "pregnancy stage")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "due date (YYYY-MM-DD)")
	return cmd
}

func newNotificationsCmd(a *app) *cobra.Command {
	var pushToken, platform string
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show notification preferences or register a push token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pushToken != "" {
				if err := a.api.RegisterPushToken(cmd.Context(), pushToken, platform); err != nil {
					return err
				}
				fmt.Println("push token registered")
				return nil
			}
			prefs, err := a.api.NotificationPreferences(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("new posts: %t\nmilestone reminders: %t\ngroup updates: %t\npremium: %t\n",
				prefs.NewPosts, prefs.MilestoneReminders, prefs.GroupUpdates, prefs.PremiumNotifications)
			return nil
		},
	}
	cmd.Flags().StringVar(&pushToken, "push-token", "", "device push token to register")
	cmd.Flags().StringVar(&platform, "platform", "ios", "push platform (ios or android)")
	return cmd
}

func newGalleryCmd(a *app) *cobra.Command {
	var community bool
	var limit int
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse photos from your posts or the community",
		RunE: func(cmd *cobra.Command, args []string) error {
			var photos []domain.Photo
			var err error
			if community {
				photos, err = a.api.CommunityPhotos(cmd.Context(), limit)
			} else {
				photos, err = a.api.MyPhotos(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, p := range photos {
				fmt.Printf("%s (from %q) %s\n", p.ImageURL, p.PostTitle, p.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&community, "community", false, "browse community photos instead of your own")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum community photos")
	return cmd
}

func newPremiumCmd(a *app) *cobra.Command {
	var subscribe bool
	cmd := &cobra.Command{
		Use:   "premium",
		Short: "Show or activate premium membership",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subscribe {
				resp, err := a.api.SubscribePremium(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Println(resp.Message)
				return nil
			}
			active, err := a.api.PremiumStatus(cmd.Context())
			if err != nil {
				return err
			}
			if active {
				fmt.Println("premium: active")
			} else {
				fmt.Println("premium: inactive")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&subscribe, "subscribe", false, "activate premium")
	return cmd
}
