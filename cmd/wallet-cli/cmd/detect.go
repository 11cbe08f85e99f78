package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// detectCmd 代表 detect 命令
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "探测可用的钱包 Provider",
	Long: `让网关扫描桥注册表, 返回已知 Provider 的完整清单。
一个都没发现也会正常返回 (Detected 全为 false), 不会报错。`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("正在探测钱包 Provider (最长等待约 10 秒)...")
		callAPI(http.MethodGet, "/api/v1/wallet/providers", nil)
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
