package main

import (
	"github.com/spf13/cobra"

	"refman/src/cmd/refman/addcmd"
	"refman/src/cmd/refman/exportcmd"
	"refman/src/cmd/refman/findcmd"
	"refman/src/cmd/refman/formatcmd"
	"refman/src/cmd/refman/kindscmd"
	"refman/src/cmd/refman/shellcmd"
	"refman/src/internal/app"
)

func newShellCmd(a *app.App) *cobra.Command { return shellcmd.New(a) }
func newAddCmd(a *app.App) *cobra.Command { return addcmd.New(a) }
func newFindCmd(a *app.App) *cobra.Command { return findcmd.New(a) }
func newFormatCmd(a *app.App) *cobra.Command { return formatcmd.New(a) }
func newExportCmd(a *app.App) *cobra.Command { return exportcmd.New(a) }
func newKindsCmd() *cobra.Command { return kindscmd.New() }
