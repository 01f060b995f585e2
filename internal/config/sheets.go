package config

import (
	"os"
	"time"

	"github.com/Veraticus/warikan/internal/sheets"
	"github.com/spf13/viper"
)

// SheetsConfig reads the sheets section of v without validating it.
// Values set through viper (config file or WARIKAN_SHEETS_* variables) win;
// the GOOGLE_SHEETS_* variables fill whatever is still empty.
func SheetsConfig(v *viper.Viper) sheets.Config {
	cfg := sheets.DefaultConfig()

	if s := v.GetString("sheets.service_account_path"); s != "" {
		cfg.ServiceAccountPath = ExpandPath(s)
	}
	cfg.ClientID = v.GetString("sheets.client_id")
	cfg.ClientSecret = v.GetString("sheets.client_secret")
	cfg.RefreshToken = v.GetString("sheets.refresh_token")
	cfg.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	if s := v.GetString("sheets.spreadsheet_name"); s != "" {
		cfg.SpreadsheetName = s
	}
	if s := v.GetString("sheets.sheet_title"); s != "" {
		cfg.SheetTitle = s
	}
	if s := v.GetString("sheets.timezone"); s != "" {
		cfg.TimeZone = s
	}
	if n := v.GetInt("sheets.batch_size"); n > 0 {
		cfg.BatchSize = n
	}
	if n := v.GetInt("sheets.retry_attempts"); n > 0 {
		cfg.RetryAttempts = n
	}
	if d := v.GetDuration("sheets.retry_delay"); d > 0 {
		cfg.RetryDelay = d
	}
	if v.IsSet("sheets.formatting") {
		cfg.EnableFormatting = v.GetBool("sheets.formatting")
	}

	fallback := func(dst *string, env string, transform func(string) string) {
		if *dst != "" {
			return
		}
		if s := os.Getenv(env); s != "" {
			*dst = transform(s)
		}
	}
	same := func(s string) string { return s }

	fallback(&cfg.ServiceAccountPath, "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", ExpandPath)
	fallback(&cfg.ClientID, "GOOGLE_SHEETS_CLIENT_ID", same)
	fallback(&cfg.ClientSecret, "GOOGLE_SHEETS_CLIENT_SECRET", same)
	fallback(&cfg.RefreshToken, "GOOGLE_SHEETS_REFRESH_TOKEN", same)
	fallback(&cfg.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID", same)

	return cfg
}

// LoadSheetsConfig reads and validates the sheets section of v.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := SheetsConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OAuthConfig returns the settings for the interactive authorization flow.
func OAuthConfig(v *viper.Viper) sheets.OAuth2Config {
	cfg := SheetsConfig(v)
	token := v.GetString("sheets.token_file")
	if token == "" {
		token = DefaultTokenPath
	}
	listen := v.GetString("sheets.oauth_listen")
	if listen == "" {
		listen = "localhost:8089"
	}
	return sheets.OAuth2Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenFile:    ExpandPath(token),
		ListenAddr:   listen,
		Timeout:      5 * time.Minute,
	}
}
