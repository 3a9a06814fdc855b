package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/session"
	"github.com/teamcrest/crest/internal/store"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose template layer operations as MCP tools over stdio",
	Long: `Runs an MCP server so external agents and UIs can drive templates:
list them, classify their layers, and bulk-rewrite tagged layers by role.
Each tool call opens the template, applies the change, and saves.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }() // safe to ignore

		return server.ServeStdio(newMCPServer(st))
	},
}

func newMCPServer(st *store.Store) *server.MCPServer {
	s := server.NewMCPServer("crest", "0.2.0")

	s.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List stored templates"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		templates, err := st.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var b strings.Builder
		for _, t := range templates {
			fmt.Fprintf(&b, "%s\t%s\t%s\n", t.ID, t.Name, t.Sport)
		}
		return mcp.NewToolResultText(b.String()), nil
	})

	s.AddTool(mcp.NewTool("report",
		mcp.WithDescription("Classify a template's layers into role buckets"),
		mcp.WithString("template_id", mcp.Required(), mcp.Description("Template to report on")),
		mcp.WithString("format", mcp.Description("text, markdown, or csv (default text)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sess, err := openTemplate(ctx, st, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer sess.Close()
		sum := sess.Report()
		switch req.GetString("format", "text") {
		case "markdown", "md":
			return mcp.NewToolResultText(sum.Markdown()), nil
		case "csv":
			return mcp.NewToolResultText(sum.CSV()), nil
		default:
			return mcp.NewToolResultText(sum.Text()), nil
		}
	})

	s.AddTool(mcp.NewTool("current_values",
		mcp.WithDescription("Flat map of value key / role name to current content"),
		mcp.WithString("template_id", mcp.Required(), mcp.Description("Template to read")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sess, err := openTemplate(ctx, st, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer sess.Close()
		var b strings.Builder
		for k, v := range sess.Values() {
			fmt.Fprintf(&b, "%s=%s\n", k, v)
		}
		return mcp.NewToolResultText(b.String()), nil
	})

	s.AddTool(mcp.NewTool("set_text",
		mcp.WithDescription("Rewrite every text layer matching a role or value key"),
		mcp.WithString("template_id", mcp.Required(), mcp.Description("Template to edit")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Text role (team_name, ...) or value key (name, ...)")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New text content")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mutate(ctx, st, req, func(sess *session.Session) (int, error) {
			target, err := req.RequireString("target")
			if err != nil {
				return 0, err
			}
			value, err := req.RequireString("value")
			if err != nil {
				return 0, err
			}
			role, key := resolveTextTarget(target)
			return sess.SetText(role, key, value), nil
		})
	})

	s.AddTool(mcp.NewTool("set_color",
		mcp.WithDescription("Rewrite the fill of every layer with a color role"),
		mcp.WithString("template_id", mcp.Required(), mcp.Description("Template to edit")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Color role (primary_color, ...)")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New fill color, e.g. #1d428a")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mutate(ctx, st, req, func(sess *session.Session) (int, error) {
			role, err := req.RequireString("role")
			if err != nil {
				return 0, err
			}
			value, err := req.RequireString("value")
			if err != nil {
				return 0, err
			}
			return sess.SetColor(api.Role(role), value)
		})
	})

	s.AddTool(mcp.NewTool("set_logo",
		mcp.WithDescription("Replace every team logo layer with a new asset"),
		mcp.WithString("template_id", mcp.Required(), mcp.Description("Template to edit")),
		mcp.WithString("src", mcp.Required(), mcp.Description("Asset path of the new logo")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mutate(ctx, st, req, func(sess *session.Session) (int, error) {
			src, err := req.RequireString("src")
			if err != nil {
				return 0, err
			}
			return sess.SetLogo(src)
		})
	})

	return s
}

func openTemplate(ctx context.Context, st *store.Store, req mcp.CallToolRequest) (*session.Session, error) {
	id, err := req.RequireString("template_id")
	if err != nil {
		return nil, err
	}
	return session.Open(ctx, sessionOptions(st), id)
}

// mutate opens the template, applies fn, and saves on success.
func mutate(ctx context.Context, st *store.Store, req mcp.CallToolRequest, fn func(*session.Session) (int, error)) (*mcp.CallToolResult, error) {
	sess, err := openTemplate(ctx, st, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer sess.Close()
	n, err := fn(sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := sess.Save(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d layer(s) updated", n)), nil
}
