package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendsignal/spendsignal/internal/common"
	"github.com/spendsignal/spendsignal/internal/model"
	"github.com/spendsignal/spendsignal/internal/recommend"
)

func suggestCmd() *cobra.Command {
	var (
		merchant    string
		description string
		direction   string
		source      string
		amount      float64
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Rank category suggestions for a new transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			categories, err := store.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			history, err := store.ListHistoricalTransactions(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}

			clock := common.RealClock{}
			scorer := recommend.New(clock)
			suggestions := scorer.Score(recommend.Input{
				ObservedAt:  clock.Now(),
				Merchant:    merchant,
				Description: description,
				Direction:   model.Direction(direction),
				Source:      model.SourceTag(source),
				Amount:      amount,
			}, categories, history)

			fmt.Println(titleStyle.Render("Category suggestions"))
			for _, s := range suggestions {
				if s.Score > 0 {
					fmt.Printf("%s %s %s\n",
						scoreStyle.Render(fmt.Sprintf("%6.1f", s.Score)),
						s.Name,
						subtleStyle.Render("("+s.Reason+")"))
					continue
				}
				fmt.Printf("       %s\n", subtleStyle.Render(s.Name))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name")
	cmd.Flags().StringVar(&description, "description", "", "transaction description")
	cmd.Flags().StringVar(&direction, "direction", string(model.DirectionExpense), "direction (expense, income)")
	cmd.Flags().StringVar(&source, "source", string(model.SourceOther), "payment source tag")
	cmd.Flags().Float64Var(&amount, "amount", 0, "transaction amount")
	cmd.Flags().IntVar(&limit, "limit", 500, "how many historical transactions to read")

	return cmd
}
