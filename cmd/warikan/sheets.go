package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/config"
	"github.com/Veraticus/warikan/internal/report"
	"github.com/Veraticus/warikan/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func sheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Publish the ledger to Google Sheets",
		Long: `Export a settled date range to a Google spreadsheet.

Authenticate with a service account (sheets.service_account_path) or with an
OAuth client plus refresh token (sheets.client_id, sheets.client_secret,
sheets.refresh_token). "warikan sheets auth" obtains the refresh token.`,
	}

	cmd.AddCommand(sheetsExportCmd())
	cmd.AddCommand(sheetsAuthCmd())
	return cmd
}

func sheetsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the summary and items of a range to the spreadsheet",
		Args:  cobra.NoArgs,
		RunE:  runSheetsExport,
	}
	addRangeFlags(cmd)
	return cmd
}

func runSheetsExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, to, err := rangeFlags(cmd)
	if err != nil {
		return err
	}

	ledger, err := loadLedger()
	if err != nil {
		return err
	}
	sheetsConfig, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return common.NewUserError("Google Sheets is not configured", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rep, err := report.Build(ctx, store, from, to)
	if err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig,
		sheets.Labels{ParticipantA: ledger.ParticipantA, ParticipantB: ledger.ParticipantB},
		slog.Default())
	if err != nil {
		return err
	}

	if err := writer.Write(ctx, rep); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d item(s) to %q", len(rep.Items), sheetsConfig.SpreadsheetName)))
	return nil
}

func sheetsAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize access with your Google account",
		Long: `Run the browser consent flow for the configured OAuth client and cache the
token. The printed refresh token goes into sheets.refresh_token or
WARIKAN_SHEETS_REFRESH_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: runSheetsAuth,
	}
}

func runSheetsAuth(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	oauthConfig := config.OAuthConfig(viper.GetViper())
	if oauthConfig.ClientID == "" || oauthConfig.ClientSecret == "" {
		return common.NewUserError("set sheets.client_id and sheets.client_secret first", common.ErrMissingConfig)
	}
	oauthConfig.ShowURL = func(url string) {
		fmt.Fprintln(out, cli.FormatInfo("Open this URL in your browser to authorize access:"))
		fmt.Fprintln(out, "  "+url)
	}

	token, err := sheets.GetOrCreateToken(cmd.Context(), oauthConfig)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess("Authorized. Token cached at "+oauthConfig.TokenFile))
	if token.RefreshToken != "" {
		fmt.Fprintln(out, cli.RenderBox("Refresh token", token.RefreshToken))
	}
	return nil
}
