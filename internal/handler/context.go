package handler

type ContextKey string

var (
	RoleCtxKey   ContextKey = "role"
	SubCtxKey    ContextKey = "sub"
	EmailCtxKey  ContextKey = "email"
	MyInfoCtx    ContextKey = "myInfo"
	UserInfoCtx  ContextKey = "userInfo"
	ClientCtx    ContextKey = "client"
	PerformerCtx ContextKey = "performer"
	EventCtx     ContextKey = "event"
	AgentCtx     ContextKey = "agent"
	TaskCtx      ContextKey = "task"
	DocumentCtx  ContextKey = "document"
)
