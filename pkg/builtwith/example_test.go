package builtwith_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/builtwith/pkg/builtwith"
	"github.com/matzehuels/builtwith/pkg/builtwith/builtwithtest"
)

func ExampleClient_Domain() {
	srv := builtwithtest.NewServer("my-key")
	defer srv.Close()
	srv.Handle("v14", builtwithtest.Response{Body: `{"Results":[{"Lookup":"example.com"}]}`})

	client, err := builtwith.New("my-key", builtwith.FormatJSON, builtwith.WithBaseURL(srv.URL))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	res, err := client.Domain(context.Background(), "example.com", &builtwith.DomainOptions{
		OnlyLiveTechnologies: builtwith.Bool(true),
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	var doc struct {
		Results []struct{ Lookup string }
	}
	if err := res.Decode(&doc); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Lookup:", doc.Results[0].Lookup)
	fmt.Println("URL:", res.URL[len(srv.URL):])
	// Output:
	// Lookup: example.com
	// URL: /v14/api.json?KEY=REDACTED&LOOKUP=example.com&LIVEONLY=true
}

func ExampleClient_Lists_fallback() {
	srv := builtwithtest.NewServer("my-key")
	defer srv.Close()
	srv.Handle("lists5", builtwithtest.Response{Body: "Error: invalid key"})

	client, _ := builtwith.New("my-key", builtwith.FormatJSON,
		builtwith.WithBaseURL(srv.URL),
		builtwith.WithLogger(log.New(io.Discard)),
	)

	res, err := client.Lists(context.Background(), []string{"php"}, nil)
	fmt.Println("Error:", err)
	fmt.Println("Fallback:", res.Fallback)
	fmt.Println("Text:", res.Text())
	// Output:
	// Error: <nil>
	// Fallback: true
	// Text: Error: invalid key
}

func ExampleNew_invalidFormat() {
	_, err := builtwith.New("my-key", "yaml")
	fmt.Println(err)
	// Output:
	// CONFIGURATION: unsupported response format "yaml" (want one of xml, json, txt)
}
