package service

// ChangeHooks 在每次成功提交之后收到记录变更通知。
// dms.Hooks 是生产实现；这里用显式接口取代框架信号分发，
// 让服务层与导出层的依赖方向一目了然。
type ChangeHooks interface {
	OnAccountSaved(address string)
	OnAccountDeleted()
	OnAliasChanged()
	OnQuotaChanged()
}

// NopHooks 是空实现，用于不需要导出联动的场景（如测试）。
type NopHooks struct{}

func (NopHooks) OnAccountSaved(string) {}
func (NopHooks) OnAccountDeleted()     {}
func (NopHooks) OnAliasChanged()       {}
func (NopHooks) OnQuotaChanged()       {}
