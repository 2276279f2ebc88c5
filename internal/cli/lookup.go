package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/builtwith/pkg/builtwith"
)

// lookupFunc performs one API call with a configured client.
type lookupFunc func(ctx context.Context, client *builtwith.Client) (*builtwith.Result, error)

// runLookup builds a client, performs call behind a spinner and writes the
// result to the command output.
func (c *CLI) runLookup(cmd *cobra.Command, label string, call lookupFunc) error {
	logger, flush := c.heldLogger()
	defer flush()

	client, err := c.newClient(logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	spinner := newSpinnerWithContext(ctx, label)
	spinner.Start()
	prog := newProgress(c.Logger)
	res, err := call(ctx, client)
	interrupted := spinner.Cancelled()
	spinner.Stop()
	flush()
	if err != nil {
		if interrupted && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	prog.debug(fmt.Sprintf("Fetched %s", res.Endpoint))

	if c.flags.showURL {
		printURL(res.URL)
	}
	if res.Fallback {
		printWarning("Response was not valid JSON; printing it as text")
	}
	return writeResult(c.out, res)
}

// writeResult prints a structured result as indented JSON and anything else
// verbatim, always ending with a newline.
func writeResult(w io.Writer, res *builtwith.Result) error {
	if res.Structured() {
		data, err := json.MarshalIndent(res.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("format response: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	text := res.Text()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// changedBool returns a pointer to v if the flag was set on the command line,
// so that unset flags are left out of the request.
func changedBool(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return builtwith.Bool(v)
}

func changedString(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return builtwith.String(v)
}

func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return builtwith.Int(v)
}

// =============================================================================
// Lookup Commands
// =============================================================================

func (c *CLI) freeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "free <domain>",
		Short: "Technology group counts for a domain (free API)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd, "Looking up "+args[0], func(ctx context.Context, cl *builtwith.Client) (*builtwith.Result, error) {
				return cl.Free(ctx, args[0])
			})
		},
	}
}

func (c *CLI) domainCommand() *cobra.Command {
	var hideAll, hideDL, liveOnly, noMeta, noAttr bool

	cmd := &cobra.Command{
		Use:   "domain <domain>",
		Short: "Full technology profile of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &builtwith.DomainOptions{
				HideAll:                 changedBool(cmd, "hide-all", hideAll),
				HideDescriptionAndLinks: changedBool(cmd, "hide-dl", hideDL),
				OnlyLiveTechnologies:    changedBool(cmd, "live-only", liveOnly),
				NoMetaData:              changedBool(cmd, "no-meta", noMeta),
				NoAttributeData:         changedBool(cmd, "no-attr", noAttr),
			}
			return c.runLookup(cmd, "Looking up "+args[0], func(ctx context.Context, cl *builtwith.Client) (*builtwith.Result, error) {
				return cl.Domain(ctx, args[0], opts)
			})
		},
	}

	cmd.Flags().BoolVar(&hideAll, "hide-all", false, "omit technology descriptions and links")
	cmd.Flags().BoolVar(&hideDL, "hide-dl", false, "omit descriptions and links only")
	cmd.Flags().BoolVar(&liveOnly, "live-only", false, "only technologies currently detected")
	cmd.Flags().BoolVar(&noMeta, "no-meta", false, "omit address, email and social metadata")
	cmd.Flags().BoolVar(&noAttr, "no-attr", false, "omit attribute data")

	return cmd
}

func (c *CLI) listsCommand() *cobra.Command {
	var meta bool
	var offset, since string

	cmd := &cobra.Command{
		Use:   "lists <technology> [technology...]",
		Short: "Sites using a technology",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &builtwith.ListsOptions{
				IncludeMetaData: changedBool(cmd, "meta", meta),
				Offset:          changedString(cmd, "offset", offset),
				Since:           changedString(cmd, "since", since),
			}
			label := "Listing sites using " + strings.Join(args, ", ")
			return c.runLookup(cmd, label, func(ctx context.Context, cl *builtwith.Client) (*builtwith.Result, error) {
				return cl.Lists(ctx, args, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&meta, "meta", false, "include metadata for every site")
	cmd.Flags().StringVar(&offset, "offset", "", "continuation token from a previous page")
	cmd.Flags().StringVar(&since, "since", "", "only sites detected since this date")

	return cmd
}

func (c *CLI) relationshipsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "relationships <domain>",
		Aliases: []string{"rel"},
		Short:   "Domains related through shared identifiers",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd, "Looking up relationships of "+args[0], func(ctx context.Context, cl *builtwith.Client) (*builtwith.Result, error) {
				return cl.Relationships(ctx, args[0])
			})
		},
	}
}

func (c *CLI) keywordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords <domain>",
		Short: "Keywords associated with a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd, "Looking up keywords of "+args[0], func(ctx context.Context, cl *builtwith.Client) (*builtwith.Result, error) {
				return cl.Keywords(ctx, args[0])
			})
		},
	}
}

func (c *CLI) trendsCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "trends <technology>",
		Short: "Usage totals for a technology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &builtwith.TrendsOptions{Date: changedString(cmd, "date", date)}
			return c.runLookup(cmd, "Fetching trends for "+args[0], func(ctx context.Context, cl *builtwith.Client) (*builtwith.Result, error) {
				return cl.Trends(ctx, args[0], opts)
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "historical date for the totals")

	return cmd
}

func (c *CLI) ctuCommand() *cobra.Command {
	var tld string
	var amount int

	cmd := &cobra.Command{
		Use:   "ctu <company name>",
		Short: "Domains owned by a company (company to URL)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			company := strings.Join(args, " ")
			opts := &builtwith.CompanyToURLOptions{
				TLD:    changedString(cmd, "tld", tld),
				Amount: changedInt(cmd, "amount", amount),
			}
			return c.runLookup(cmd, "Looking up domains of "+company, func(ctx context.Context, cl *builtwith.Client) (*builtwith.Result, error) {
				return cl.CompanyToURL(ctx, company, opts)
			})
		},
	}

	cmd.Flags().StringVar(&tld, "tld", "", "preferred top-level domain")
	cmd.Flags().IntVar(&amount, "amount", 0, "number of domains to return")

	return cmd
}
