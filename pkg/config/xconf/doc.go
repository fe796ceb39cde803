// Package xconf 提供存储配置的加载、解析和热重载，基于 koanf 实现。
//
// # 设计理念
//
// xconf 定位为最小化配置加载器：从文件或字节数据加载 YAML/JSON，
// 反序列化为结构体，并在文件变更时自动重载。
// 不负责配置治理（必选字段校验、环境变量覆盖），由上层按需实现。
//
// 除通用的加载能力外，xconf 内置 StoreConfig——xstore.Config 的文件表示，
// 周期字段用 "60s"、"5m" 这类时长字符串书写：
//
//	store:
//	  max_entries: 10000
//	  cleanup_interval: 60s
//	  enable_stats: true
//
//	cfg, _ := xconf.New("/etc/xstore/config.yaml")
//	sc, _ := xconf.LoadStore(cfg, "store")
//	s, _ := xstore.New[string](sc)
//
// # 支持的格式
//
//   - YAML（默认，推荐）：.yaml, .yml
//   - JSON：.json
//
// # 并发安全
//
// 所有方法都是并发安全的。Reload 成功后整体替换底层 koanf 实例，
// 解析失败时保留旧配置不变。Client() 返回的是当前实例的快照指针，
// 每次需要时重新调用，不要长期缓存。
//
// # 配置监视
//
// 支持文件变更监视和自动重载（基于 fsnotify）。
// 监视目录而非文件本身，兼容 vim/emacs 的原子写入；内置防抖。
// 从字节数据创建的 Config 不支持监视。
package xconf
