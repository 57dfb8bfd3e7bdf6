package utils

import "sync"

// EventType 事件类型
type EventType uint16

const (
	EventRedraw  EventType = iota + 1 // 需要重绘
	EventPersist                      // 快照已保存
	EventFault                        // 可恢复错误
)

func (t EventType) String() string {
	switch t {
	case EventRedraw:
		return "redraw"
	case EventPersist:
		return "persist"
	case EventFault:
		return "fault"
	}
	return "unknown"
}

// EventValue 事件值
type EventValue struct {
	Type  EventType
	Value any
}

// Handler 事件处理函数
type Handler func(event EventValue)

// Context 事件上下文
// @ 先注册处理函数,发送的事件进入缓冲通道,由订阅者接收或调用已注册的处理函数.
// @ 通道已满时丢弃事件,发送方不阻塞.
type Context interface {
	Close()                                      // 关闭通道
	EventReceive() <-chan EventValue             // 获取事件
	EventSend(eventType EventType, val any) bool // 发送事件
	EventRegister(eventType EventType, h Handler) bool
	Callback(value EventValue) // 调用已注册的处理
}

type contextImpl struct {
	mu       sync.Mutex
	handlers map[EventType]Handler
	channel  chan EventValue
	closed   bool
}

// NewContext 创建事件上下文，size 为通道缓冲大小
func NewContext(size int) Context {
	return &contextImpl{
		handlers: make(map[EventType]Handler),
		channel:  make(chan EventValue, max(1, size)),
	}
}

// EventReceive 获取事件接收通道
func (c *contextImpl) EventReceive() <-chan EventValue { return c.channel }

// EventSend 发送事件，队列已满或已关闭时返回假
func (c *contextImpl) EventSend(eventType EventType, val any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.channel <- EventValue{Type: eventType, Value: val}:
		return true
	default:
		return false
	}
}

// EventRegister 注册处理函数，同一类型只能注册一次
func (c *contextImpl) EventRegister(eventType EventType, h Handler) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.handlers[eventType]; ok {
		return false
	}
	c.handlers[eventType] = h
	return true
}

// Callback 调用已注册的处理函数
func (c *contextImpl) Callback(value EventValue) {
	c.mu.Lock()
	h := c.handlers[value.Type]
	c.mu.Unlock()
	if h != nil {
		h(value)
	}
}

// Close 关闭通道
func (c *contextImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.channel)
	}
}
