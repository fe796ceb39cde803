// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xmetrics: 存储事件的 OTel 指标上报与标签化计时
package observability
