package util

// Lerper drives a value from start to finish over duration seconds, pushing every step into setValue.
type Lerper[V any] struct {
	start, finish V
	duration      float64
	timer         float64
	setValue      func(V)
	lerpValue     func(V, V, float64) V
	ease          func(float64) float64
	isDone        bool
}

func NewLerper[V any](lerpValue func(V, V, float64) V, setValue func(V), start, finish V, duration float64) *Lerper[V] {
	return &Lerper[V]{
		start:     start,
		finish:    finish,
		duration:  duration,
		lerpValue: lerpValue,
		setValue:  setValue,
	}
}

// WithEasing shapes the progress curve, e.g. EaseInOutQuad.
func (l *Lerper[V]) WithEasing(ease func(float64) float64) *Lerper[V] {
	l.ease = ease
	return l
}

func (l *Lerper[V]) IsDone() bool {
	return l.isDone
}

// Progress is the linear completion in [0,1].
func (l *Lerper[V]) Progress() float64 {
	if l.duration <= 0 || l.isDone {
		return 1
	}
	return Clamp(l.timer/l.duration, 0, 1)
}

func (l *Lerper[V]) Update(deltaTime float64) bool {
	if l.isDone {
		return true
	}

	l.timer += deltaTime
	if l.timer >= l.duration {
		l.setValue(l.finish)
		l.isDone = true
		return l.isDone
	}

	percent := l.timer / l.duration
	if l.ease != nil {
		percent = l.ease(percent)
	}
	l.setValue(l.lerpValue(l.start, l.finish, percent))
	return false
}
