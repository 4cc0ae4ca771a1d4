package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type clientFactory func() *apiClient

func printJSON(out io.Writer, data json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(out)
	return err
}

func newFundsCmd(api clientFactory) *cobra.Command {
	fundsCmd := &cobra.Command{
		Use:   "funds",
		Short: "Fund registry operations",
	}

	var search, creator, vault string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List funds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if search != "" {
				q.Set("search", search)
			}
			if creator != "" {
				q.Set("creator", creator)
			}
			if vault != "" {
				q.Set("vault", vault)
			}

			data, err := api().get("/api/v1/funds", q)
			if err != nil {
				return err
			}

			var funds []struct {
				ID         string `json:"id"`
				FundName   string `json:"fundName"`
				FundSymbol string `json:"fundSymbol"`
				VaultProxy string `json:"vaultProxy"`
				Status     string `json:"status"`
			}
			if err := json.Unmarshal(data, &funds); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSYMBOL\tVAULT\tSTATUS")
			for _, f := range funds {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.ID, truncate(f.FundName, 24), f.FundSymbol, truncate(f.VaultProxy, 14), f.Status)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVar(&search, "search", "", "Substring of name or symbol")
	listCmd.Flags().StringVar(&creator, "creator", "", "Creator address")
	listCmd.Flags().StringVar(&vault, "vault", "", "Vault proxy address")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := api().get("/api/v1/funds/"+url.PathEscape(args[0]), nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}

	var create struct {
		FundName             string `json:"fundName"`
		FundSymbol           string `json:"fundSymbol"`
		VaultProxy           string `json:"vaultProxy"`
		ComptrollerProxy     string `json:"comptrollerProxy"`
		DenominationAsset    string `json:"denominationAsset"`
		Creator              string `json:"creator"`
		TxHash               string `json:"txHash,omitempty"`
		EntranceFeePercent   string `json:"entranceFeePercent,omitempty"`
		EntranceFeeRecipient string `json:"entranceFeeRecipient,omitempty"`
	}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a fund",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := api().do(http.MethodPost, "/api/v1/funds", nil, create)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	createCmd.Flags().StringVar(&create.FundName, "name", "", "Fund name")
	createCmd.Flags().StringVar(&create.FundSymbol, "symbol", "", "Fund symbol")
	createCmd.Flags().StringVar(&create.VaultProxy, "vault", "", "Vault proxy address")
	createCmd.Flags().StringVar(&create.ComptrollerProxy, "comptroller", "", "Comptroller proxy address")
	createCmd.Flags().StringVar(&create.DenominationAsset, "asset", "", "Denomination asset")
	createCmd.Flags().StringVar(&create.Creator, "creator", "", "Creator address")
	createCmd.Flags().StringVar(&create.TxHash, "tx-hash", "", "Creation transaction hash")
	createCmd.Flags().StringVar(&create.EntranceFeePercent, "fee", "", "Entrance fee percent")
	createCmd.Flags().StringVar(&create.EntranceFeeRecipient, "fee-recipient", "", "Entrance fee recipient")

	statusCmd := &cobra.Command{
		Use:   "status <id> <active|paused|closed>",
		Short: "Change a fund's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"status": args[1]}
			data, err := api().do(http.MethodPatch, "/api/v1/funds/"+url.PathEscape(args[0])+"/status", nil, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}

	fundsCmd.AddCommand(listCmd, getCmd, createCmd, statusCmd)
	return fundsCmd
}

func newInvestmentsCmd(api clientFactory) *cobra.Command {
	investmentsCmd := &cobra.Command{
		Use:   "investments",
		Short: "Deposit and redeem records",
	}

	var record struct {
		FundID          string `json:"fundId"`
		InvestorAddress string `json:"investorAddress"`
		Type            string `json:"type"`
		Amount          string `json:"amount"`
		Shares          string `json:"shares"`
		SharePrice      string `json:"sharePrice"`
		TxHash          string `json:"txHash"`
	}
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a deposit or redeem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := api().do(http.MethodPost, "/api/v1/investments", nil, record)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	recordCmd.Flags().StringVar(&record.FundID, "fund", "", "Fund id")
	recordCmd.Flags().StringVar(&record.InvestorAddress, "investor", "", "Investor address")
	recordCmd.Flags().StringVar(&record.Type, "type", "deposit", "deposit or redeem")
	recordCmd.Flags().StringVar(&record.Amount, "amount", "", "Amount in denomination units")
	recordCmd.Flags().StringVar(&record.Shares, "shares", "", "Shares minted or burned")
	recordCmd.Flags().StringVar(&record.SharePrice, "price", "", "Share price")
	recordCmd.Flags().StringVar(&record.TxHash, "tx-hash", "", "Transaction hash")

	var historyInvestor string
	historyCmd := &cobra.Command{
		Use:   "history <fund-id>",
		Short: "List a fund's records, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if historyInvestor != "" {
				q.Set("investor", historyInvestor)
			}
			data, err := api().get("/api/v1/funds/"+url.PathEscape(args[0])+"/investments", q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	historyCmd.Flags().StringVar(&historyInvestor, "investor", "", "Only this investor's records")

	var summaryInvestor string
	summaryCmd := &cobra.Command{
		Use:   "summary <fund-id>",
		Short: "Show an investor's position in a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{"investor": {summaryInvestor}}
			data, err := api().get("/api/v1/funds/"+url.PathEscape(args[0])+"/investments/summary", q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	summaryCmd.Flags().StringVar(&summaryInvestor, "investor", "", "Investor address")
	_ = summaryCmd.MarkFlagRequired("investor")

	investmentsCmd.AddCommand(recordCmd, historyCmd, summaryCmd)
	return investmentsCmd
}

func newStatsCmd(api clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <fund-id>",
		Short: "Show fund statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := api().get("/api/v1/funds/"+url.PathEscape(args[0])+"/statistics", nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}

func newPortfolioCmd(api clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio <address>",
		Short: "Show an investor's portfolio across funds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := api().get("/api/v1/investors/"+url.PathEscape(args[0])+"/portfolio", nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}

func newOverviewCmd(api clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show platform totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := api().get("/api/v1/overview", nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}
