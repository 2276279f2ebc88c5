package cli

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/builtwith/pkg/builtwith"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"free", "domain", "lists", "relationships", "keywords", "trends", "ctu", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"key", "format", "config", "base-url", "timeout", "show-url"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestNewClient_UsesResolvedFormat(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envFormat, "xml")
	t.Setenv(envTimeout, "")

	c := New(io.Discard, LogInfo)
	c.flags.key = "k"
	c.flags.timeout = 5 * time.Second

	client, err := c.newClient(c.Logger)
	if err != nil {
		t.Fatal(err)
	}
	if client.Format() != builtwith.FormatXML {
		t.Errorf("Format() = %q, want xml", client.Format())
	}
}

func TestCompleteFormats(t *testing.T) {
	got, directive := completeFormats(&cobra.Command{}, nil, "")
	if strings.Join(got, ",") != "xml,json,txt" {
		t.Errorf("completions = %v", got)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := runCLI(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "builtwith") {
				t.Errorf("%s completion should mention the command name", shell)
			}
		})
	}
}
