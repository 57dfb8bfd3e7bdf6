package registry

import "waveform/types"

// assign 为没有颜色的波形分配颜色
func (r *Registry) assign(index int) Change {
	if !r.traces[index].Color.IsZero() {
		return 0
	}
	r.traces[index].Color = r.alloc.Assign(r.Colors())
	return ChangePersist
}

// SetVisible 设置可见性，显示时先确保已分配颜色
func (r *Registry) SetVisible(index int, visible bool) Change {
	if !r.valid(index) {
		return 0
	}
	var c Change
	if visible {
		c |= r.assign(index)
	}
	if r.traces[index].Visible != visible {
		r.traces[index].Visible = visible
		c |= ChangeRedraw | ChangePersist
	}
	return r.mark(c)
}

// ShowAll 显示指定波形
func (r *Registry) ShowAll(indices []int) Change {
	var c Change
	for _, i := range indices {
		c |= r.SetVisible(i, true)
	}
	return c | r.mark(ChangeRedraw)
}

// HideAll 隐藏全部波形
func (r *Registry) HideAll() Change {
	for i := range r.traces {
		r.traces[i].Visible = false
	}
	return r.mark(ChangeRedraw | ChangePersist)
}

// Toggle 指定波形中有可见的则全部隐藏，否则全部显示
func (r *Registry) Toggle(indices []int) Change {
	for _, i := range indices {
		if r.valid(i) && r.traces[i].Visible {
			var c Change
			for _, j := range indices {
				c |= r.SetVisible(j, false)
			}
			return c
		}
	}
	var c Change
	for _, i := range indices {
		c |= r.SetVisible(i, true)
	}
	return c
}

// SetColor 批量设置颜色，空颜色不处理
func (r *Registry) SetColor(indices []int, color types.Color) Change {
	if color.IsZero() {
		return 0
	}
	return r.each(indices, func(t *types.Trace) { t.Color = color })
}

// SetThickness 批量设置线宽
func (r *Registry) SetThickness(indices []int, thickness types.Thickness) Change {
	return r.each(indices, func(t *types.Trace) { t.Thickness = thickness })
}

// SetStyle 批量设置线型
func (r *Registry) SetStyle(indices []int, style types.Style) Change {
	return r.each(indices, func(t *types.Trace) { t.Style = style })
}

// each 对有效索引应用修改
func (r *Registry) each(indices []int, fn func(t *types.Trace)) Change {
	var c Change
	for _, i := range indices {
		if r.valid(i) {
			fn(&r.traces[i])
			c = ChangeRedraw | ChangePersist
		}
	}
	return r.mark(c)
}

// Rename 修改显示名称，名称为空或未变化时不做处理
// 旧名称下保存的样式不会迁移到新名称
func (r *Registry) Rename(index int, name string) Change {
	if !r.valid(index) || name == "" || r.traces[index].Name == name {
		return 0
	}
	r.traces[index].Name = name
	return r.mark(ChangeRedraw | ChangePersist)
}

// Reset 隐藏全部波形，保留颜色与样式
func (r *Registry) Reset() Change { return r.HideAll() }
