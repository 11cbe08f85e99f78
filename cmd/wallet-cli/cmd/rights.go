package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

// mintCmd 代表 mint 命令
var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "铸造权利 NFT",
	Long:  `通过已连接的钱包签名并铸造一个权利 NFT, 需要钱包内确认。`,
	Run: func(cmd *cobra.Command, args []string) {
		tokenID, _ := cmd.Flags().GetString("token")
		rightType, _ := cmd.Flags().GetString("type")
		title, _ := cmd.Flags().GetString("title")
		metadataURI, _ := cmd.Flags().GetString("metadata")
		royaltyBP, _ := cmd.Flags().GetInt64("royalty")

		if tokenID == "" || title == "" || metadataURI == "" {
			fmt.Println("--token, --title, --metadata 均不能为空")
			os.Exit(1)
		}

		fmt.Println("正在提交铸造交易 (请在钱包中确认)...")
		callAPI(http.MethodPost, "/api/v1/rights/mint", map[string]interface{}{
			"token_id":     tokenID,
			"type":         rightType,
			"title":        title,
			"metadata_uri": metadataURI,
			"royalty_bp":   royaltyBP,
		})
	},
}

// transferCmd 代表 transfer 命令
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "转移权利 NFT",
	Run: func(cmd *cobra.Command, args []string) {
		tokenID, _ := cmd.Flags().GetString("token")
		serialNo, _ := cmd.Flags().GetInt64("serial")
		to, _ := cmd.Flags().GetString("to")

		if tokenID == "" || to == "" {
			fmt.Println("--token 与 --to 均不能为空")
			os.Exit(1)
		}

		fmt.Println("正在提交转移交易 (请在钱包中确认)...")
		callAPI(http.MethodPost, "/api/v1/rights/transfer", map[string]interface{}{
			"token_id":  tokenID,
			"serial_no": serialNo,
			"to":        to,
		})
	},
}

func init() {
	rootCmd.AddCommand(mintCmd)
	mintCmd.Flags().String("token", "", "Token ID (shard.realm.num)")
	mintCmd.Flags().String("type", "copyright", "权利类型 (copyright/royalty/license/ownership)")
	mintCmd.Flags().String("title", "", "权利标题")
	mintCmd.Flags().String("metadata", "", "元数据 URI")
	mintCmd.Flags().Int64("royalty", 0, "版税 (basis points)")

	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().String("token", "", "Token ID (shard.realm.num)")
	transferCmd.Flags().Int64("serial", 1, "NFT 序号")
	transferCmd.Flags().String("to", "", "接收方账户 ID")
}
