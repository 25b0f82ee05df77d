package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/shoppingagent/backend/config"
	"github.com/shoppingagent/backend/internal/infrastructure/catalog"
	"github.com/shoppingagent/backend/internal/infrastructure/generator"
	"github.com/shoppingagent/backend/internal/usecase"
	"github.com/spf13/cobra"
)

const (
	welcomeMessage = "Welcome to the Shopping Agent!"
	questionPrompt = "What product are you looking for? "
)

// assistantFactory builds the shopping assistant once configuration is known
type assistantFactory func() (*usecase.ShoppingAssistant, error)

func main() {
	if err := newRootCmd(loadAssistant).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(build assistantFactory) *cobra.Command {
	var question string

	cmd := &cobra.Command{
		Use:          "shopper",
		Short:        "Ask the shopping agent about products in the catalog",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := build()
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), question, assistant)
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "question to ask instead of prompting for one")

	return cmd
}

func loadAssistant() (*usecase.ShoppingAssistant, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	debug := cfg.Server.Environment == "development"

	catalogClient := catalog.NewClient(catalog.ClientConfig{
		URL:               cfg.Catalog.URL,
		Timeout:           cfg.Catalog.Timeout,
		MaxAttempts:       cfg.Catalog.MaxAttempts,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
	})
	catalogClient.SetDebug(debug)

	answerGenerator, err := generator.New(cfg.Generator.Provider, generator.Config{
		APIKey:       cfg.Generator.APIKey,
		BaseURL:      cfg.Generator.BaseURL,
		Model:        cfg.Generator.Model,
		Instructions: cfg.Generator.Instructions,
		Debug:        debug,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create answer generator: %w", err)
	}

	search := usecase.NewCatalogSearchService(catalogClient, usecase.CatalogSearchConfig{
		ResultLimit:        cfg.Catalog.ResultLimit,
		EnableDebugLogging: debug,
	})

	return usecase.NewShoppingAssistant(answerGenerator, search), nil
}

// runSession greets the user, reads one question unless one was given, and prints both results
func runSession(ctx context.Context, in io.Reader, out io.Writer, question string, assistant *usecase.ShoppingAssistant) error {
	fmt.Fprintln(out, welcomeMessage)

	if question == "" {
		fmt.Fprint(out, questionPrompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read question: %w", err)
		}
		question = strings.TrimRight(line, "\r\n")
	}

	answer, err := assistant.Ask(ctx, question)
	if answer != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Matching Products:")
		fmt.Fprintln(out, answer.Products)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Agent Answer:")
	fmt.Fprintln(out, answer.AgentAnswer)

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
