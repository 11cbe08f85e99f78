package provider

// Descriptor 描述一个已知钱包 Provider 如何在环境中宣告自己。
// 探测时构造，生命周期短暂; Detected 标记该 Provider 当前是否可用。
type Descriptor struct {
	Name         string          `json:"name"`
	BindingPath  []string        `json:"binding_path"`           // 环境注册表中的固定路径
	Capabilities map[string]bool `json:"capabilities,omitempty"` // 能力旗标, 其中一个对该钱包唯一
	InstallURL   string          `json:"install_url,omitempty"`  // 未检测到时引导用户安装
	Endpoint     string          `json:"endpoint,omitempty"`     // 探测成功后填充的请求端点
	Detected     bool            `json:"detected"`
}

// capabilityKey 返回该 Provider 的唯一识别旗标 (用于通用容器匹配)
func (d Descriptor) capabilityKey() string {
	for k, unique := range d.Capabilities {
		if unique {
			return k
		}
	}
	return ""
}

// KnownProviders 返回 Dright 支持的钱包 Provider 固定清单。
// 这份名单是与钱包生态的事实"线协议", 新钱包上线时需要在这里登记,
// 属于持续维护点而不是一次性配置。
func KnownProviders() []Descriptor {
	return []Descriptor{
		{
			Name:         "hashpack",
			BindingPath:  []string{"hashconnect"},
			Capabilities: map[string]bool{"isHashPack": true},
			InstallURL:   "https://www.hashpack.app/download",
		},
		{
			Name:         "blade",
			BindingPath:  []string{"bladeConnect"},
			Capabilities: map[string]bool{"isBlade": true},
			InstallURL:   "https://bladewallet.io/",
		},
		{
			Name:         "kabila",
			BindingPath:  []string{"kabila"},
			Capabilities: map[string]bool{"isKabila": true},
			InstallURL:   "https://wallet.kabila.app/",
		},
	}
}
