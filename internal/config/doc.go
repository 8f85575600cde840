// Package config loads billfold's configuration.
//
// Precedence, lowest to highest: built-in defaults, the TOML file at
// ~/.config/billfold/config.toml (api_url, download_dir, log_path), then
// BILLFOLD_API_URL / BILLFOLD_DOWNLOAD_DIR / BILLFOLD_LOG_PATH from the
// environment. Paths accept a leading ~.
package config
