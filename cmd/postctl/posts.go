package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"devconnector.com/social-network/client"
	"devconnector.com/social-network/state"
)

var errEmptyText = errors.New("text is required")

// postStep runs one API call and turns its answer into an action.
type postStep func(ctx context.Context, c *client.Client) (state.Action, error)

func (a *app) postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and write posts, likes and comments",
	}

	cmd.AddCommand(
		a.postCmd("list", "List all posts, newest first", cobra.NoArgs, func(args []string) []postStep {
			return []postStep{listPosts}
		}),
		a.postCmd("get <id>", "Show one post", cobra.ExactArgs(1), func(args []string) []postStep {
			return []postStep{getPost(args[0])}
		}),
		a.postCmd("create <text>", "Publish a post", cobra.ArbitraryArgs, func(args []string) []postStep {
			return []postStep{func(ctx context.Context, c *client.Client) (state.Action, error) {
				p, err := c.CreatePost(ctx, joinText(args))
				if err != nil {
					return state.Action{}, err
				}
				return state.AddPostAction(*p), nil
			}}
		}),
		a.postCmd("edit <id> <text>", "Replace the text of your post", cobra.MinimumNArgs(1), func(args []string) []postStep {
			return []postStep{getPost(args[0]), func(ctx context.Context, c *client.Client) (state.Action, error) {
				p, err := c.UpdatePost(ctx, args[0], joinText(args[1:]))
				if err != nil {
					return state.Action{}, err
				}
				return state.UpdatePostAction(*p), nil
			}}
		}),
		a.postCmd("delete <id>", "Delete your post", cobra.ExactArgs(1), func(args []string) []postStep {
			return []postStep{listPosts, func(ctx context.Context, c *client.Client) (state.Action, error) {
				if err := c.DeletePost(ctx, args[0]); err != nil {
					return state.Action{}, err
				}
				return state.DeletePostAction(args[0]), nil
			}}
		}),
		a.postCmd("like <id>", "Like a post", cobra.ExactArgs(1), func(args []string) []postStep {
			return []postStep{getPost(args[0]), func(ctx context.Context, c *client.Client) (state.Action, error) {
				likes, err := c.Like(ctx, args[0])
				if err != nil {
					return state.Action{}, err
				}
				return state.UpdateLikesAction(args[0], likes), nil
			}}
		}),
		a.postCmd("unlike <id>", "Remove your like from a post", cobra.ExactArgs(1), func(args []string) []postStep {
			return []postStep{getPost(args[0]), func(ctx context.Context, c *client.Client) (state.Action, error) {
				likes, err := c.Unlike(ctx, args[0])
				if err != nil {
					return state.Action{}, err
				}
				return state.UpdateLikesAction(args[0], likes), nil
			}}
		}),
		a.postCmd("comment <id> <text>", "Comment on a post", cobra.MinimumNArgs(1), func(args []string) []postStep {
			return []postStep{getPost(args[0]), func(ctx context.Context, c *client.Client) (state.Action, error) {
				comments, err := c.AddComment(ctx, args[0], joinText(args[1:]))
				if err != nil {
					return state.Action{}, err
				}
				return state.AddCommentAction(comments), nil
			}}
		}),
		a.postCmd("uncomment <id> <comment-id>", "Delete your comment", cobra.ExactArgs(2), func(args []string) []postStep {
			return []postStep{getPost(args[0]), func(ctx context.Context, c *client.Client) (state.Action, error) {
				comments, err := c.DeleteComment(ctx, args[0], args[1])
				if err != nil {
					return state.Action{}, err
				}
				return state.RemoveCommentAction(comments), nil
			}}
		}),
	)

	return cmd
}

func (a *app) postCmd(use, short string, args cobra.PositionalArgs, steps func([]string) []postStep) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			s := state.InitialPostState()

			if needsText(use) && joinText(textArgs(use, argv)) == "" {
				s = state.ReducePost(s, state.PostEmptyAction())
				_ = printJSON(cmd, s)
				return errEmptyText
			}

			c, err := a.authenticated()
			if err != nil {
				return err
			}
			defer c.Close()

			for _, step := range steps(argv) {
				action, err := step(cmd.Context(), c)
				if err != nil {
					s = state.ReducePost(s, state.PostErrorAction(failure(err)))
					_ = printJSON(cmd, s)
					return err
				}
				s = state.ReducePost(s, action)
			}
			return printJSON(cmd, s)
		},
	}
}

func listPosts(ctx context.Context, c *client.Client) (state.Action, error) {
	posts, err := c.ListPosts(ctx)
	if err != nil {
		return state.Action{}, err
	}
	return state.GetPostsAction(posts), nil
}

func getPost(id string) postStep {
	return func(ctx context.Context, c *client.Client) (state.Action, error) {
		p, err := c.GetPost(ctx, id)
		if err != nil {
			return state.Action{}, err
		}
		return state.GetPostAction(*p), nil
	}
}

func needsText(use string) bool {
	return strings.HasSuffix(use, "<text>")
}

// textArgs drops the leading id arguments of commands shaped "<verb> <id> <text>".
func textArgs(use string, argv []string) []string {
	skip := len(strings.Fields(use)) - 2
	if skip > len(argv) {
		return nil
	}
	return argv[skip:]
}

func joinText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
