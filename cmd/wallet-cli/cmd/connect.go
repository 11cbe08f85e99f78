package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

// connectCmd 代表 connect 命令
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "连接钱包",
	Long: `与指定的钱包 Provider 握手建立连接。
钱包不可用时可以用 --account 手动指定账户 ID (shard.realm.num) 兜底。`,
	Run: func(cmd *cobra.Command, args []string) {
		providerName, _ := cmd.Flags().GetString("provider")
		accountID, _ := cmd.Flags().GetString("account")

		if accountID != "" {
			fmt.Printf("手动连接账户 %s ...\n", accountID)
			callAPI(http.MethodPost, "/api/v1/wallet/connect/manual", map[string]string{
				"account_id": accountID,
			})
			return
		}

		if providerName == "" {
			fmt.Println("必须指定 --provider 或 --account 之一")
			os.Exit(1)
		}

		fmt.Printf("正在连接 %s (请在钱包中确认)...\n", providerName)
		callAPI(http.MethodPost, "/api/v1/wallet/connect", map[string]string{
			"provider": providerName,
		})
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().StringP("provider", "p", "", "Provider 名称 (hashpack / blade / kabila)")
	connectCmd.Flags().StringP("account", "a", "", "手动指定账户 ID, 跳过 Provider 握手")
}
