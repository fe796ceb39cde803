// Package xloader 提供基于 xstore 的 Cache-Aside 模式加载器。
//
// xloader 是"查缓存，未命中则回源并写回"这一边界协作的适配层：
// 存储本身只承诺正确的缓存语义，从不承诺与任何后端数据源的一致性，
// 回源逻辑全部由调用方注入的 LoadFunc 承载。
//
// # 核心特性
//
//   - 命中直接返回，未命中回源并按给定 TTL 写回
//   - singleflight 防击穿：同一 key 的并发请求只触发一次回源
//   - 独立加载超时：回源脱离首个调用者的取消链，避免连坐
//   - 写回失败不阻断返回：记录日志，数据仍交付调用方
//
// # Singleflight 去重说明
//
// 去重仅基于 key，不包含 ttl：同一 key 的并发请求（即使 ttl 不同）
// 只回源一次，最终缓存的 TTL 取决于胜出请求的配置。
// 同一数据应使用一致的 TTL 配置；确需不同 TTL 应使用不同的 key
// 或通过 WithSingleflight(false) 禁用去重。
//
// # 错误处理
//
// 回源失败时错误原样返回且不写缓存，下次请求会再次回源；
// xloader 自身从不重试——重试策略属于调用方。
package xloader
