package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

// statusCmd 代表 status 命令
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "查看当前连接状态",
	Run: func(cmd *cobra.Command, args []string) {
		callAPI(http.MethodGet, "/api/v1/wallet/status", nil)
	},
}

// disconnectCmd 代表 disconnect 命令
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "断开当前钱包连接",
	Run: func(cmd *cobra.Command, args []string) {
		callAPI(http.MethodPost, "/api/v1/wallet/disconnect", nil)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(disconnectCmd)
}
