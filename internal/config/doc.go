// Package config defines the settings shared by the board server and client
// and provides helpers to load, validate and save them in YAML format.
//
// Values come from the YAML file, then an optional .env file and JEOPARDY_*
// environment variables override them.
package config
