package web

import "embed"

// StaticFS embeds the dashboard shell (html/css/js).
//
//go:embed static/*
var StaticFS embed.FS
