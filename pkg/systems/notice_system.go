package systems

import (
	"log"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/ecs"
)

// NoticeSystem 模态提示系统
//
// 每条提示是一个独立实体。同一时刻最多显示一个，其余按创建顺序排队。
// 提示可见时 Blocking() 返回 true，场景应跳过其他界面输入；指针释放时
// 关闭当前提示（实体标记删除，由场景在帧末统一清理）并显示下一条。
type NoticeSystem struct {
	entityManager *ecs.EntityManager
	input         PointerSource
	width, height float64

	current ecs.EntityID // 0 表示没有可见提示
	queue   []ecs.EntityID
}

// NewNoticeSystem 创建提示系统
func NewNoticeSystem(em *ecs.EntityManager, input PointerSource, width, height float64) *NoticeSystem {
	return &NoticeSystem{
		entityManager: em,
		input:         input,
		width:         width,
		height:        height,
	}
}

// Show 创建提示实体；已有提示可见时排队
func (s *NoticeSystem) Show(title, message string, level components.NoticeLevel) {
	log.Printf("[NoticeSystem] %s: %s", title, message)
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.NoticeComponent{
		Title:   title,
		Message: message,
		Level:   level,
		Width:   s.width,
		Height:  s.height,
	})
	s.queue = append(s.queue, id)
	if !s.Blocking() {
		s.showNext()
	}
}

// Blocking 是否有提示正在显示
func (s *NoticeSystem) Blocking() bool {
	return s.current != 0 && ecs.HasComponent[*components.NoticeComponent](s.entityManager, s.current)
}

// Current 返回当前显示的提示，没有时返回 nil
func (s *NoticeSystem) Current() *components.NoticeComponent {
	if s.current == 0 {
		return nil
	}
	notice, ok := ecs.GetComponent[*components.NoticeComponent](s.entityManager, s.current)
	if !ok {
		return nil
	}
	return notice
}

// Pending 返回排队中的提示数量（不含当前显示的提示）
func (s *NoticeSystem) Pending() int {
	return len(s.queue)
}

// Update 指针释放时关闭当前提示
func (s *NoticeSystem) Update(deltaTime float64) {
	if !s.Blocking() {
		return
	}
	if s.input.Pointer().JustReleased {
		s.dismiss()
	}
}

// dismiss 隐藏并标记删除当前提示实体
func (s *NoticeSystem) dismiss() {
	if notice := s.Current(); notice != nil {
		notice.IsVisible = false
	}
	s.entityManager.DestroyEntity(s.current)
	s.current = 0
	s.showNext()
}

// showNext 显示队列中的下一条提示
func (s *NoticeSystem) showNext() {
	for len(s.queue) > 0 {
		id := s.queue[0]
		s.queue = s.queue[1:]
		if notice, ok := ecs.GetComponent[*components.NoticeComponent](s.entityManager, id); ok {
			notice.IsVisible = true
			s.current = id
			return
		}
	}
}
