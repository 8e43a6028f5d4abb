// Package config provides configuration loading for the to-do CLI client.
//
// Sources, applied in order (later ones win):
//
//  1. Defaults (see Config.LoadDefaults).
//  2. A JSON file named by -c or -config.
//  3. Environment variables (TODO_SERVER_URL, TODO_SESSION_DB, ...).
//  4. Command-line flags (-a, -f, -i, -r, -l).
//
// JSON durations go through timex.Duration, so both "3s" and integer
// nanoseconds are accepted.
package config
