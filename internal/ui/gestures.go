package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureTap GestureType = iota
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeDown
	GestureLongPress
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
	RefreshCooldown                  = 2 * time.Second
)

// GestureHandler turns raw touch events into high-level gestures
type GestureHandler struct {
	onGesture func(GestureType)

	touchStartTime time.Time
	touchStartPos  fyne.Position

	swipeThreshold    float32
	longPressDuration time.Duration
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(onGesture func(GestureType)) *GestureHandler {
	return &GestureHandler{
		onGesture:         onGesture,
		swipeThreshold:    DefaultSwipeThreshold,
		longPressDuration: DefaultLongPressDuration,
	}
}

// TouchDown records the start of a touch
func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.touchStartTime = time.Now()
	gh.touchStartPos = event.Position
}

// TouchUp classifies the completed touch as tap, long press or swipe
func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	duration := time.Since(gh.touchStartTime)

	dx := event.Position.X - gh.touchStartPos.X
	dy := event.Position.Y - gh.touchStartPos.Y
	distance := dx*dx + dy*dy

	if duration >= gh.longPressDuration {
		gh.triggerGesture(GestureLongPress)
		return
	}
	if distance < gh.swipeThreshold {
		gh.triggerGesture(GestureTap)
		return
	}

	gh.detectSwipeDirection(dx, dy)
}

// TouchCancel resets tracking
func (gh *GestureHandler) TouchCancel(event *mobile.TouchEvent) {
	gh.touchStartTime = time.Time{}
}

// detectSwipeDirection resolves the primary direction of a swipe.
// Upward swipes are left to the scroller.
func (gh *GestureHandler) detectSwipeDirection(dx, dy float32) {
	absDx := dx
	if absDx < 0 {
		absDx = -absDx
	}
	absDy := dy
	if absDy < 0 {
		absDy = -absDy
	}

	if absDx > absDy {
		if dx > 0 {
			gh.triggerGesture(GestureSwipeRight)
		} else {
			gh.triggerGesture(GestureSwipeLeft)
		}
		return
	}
	if dy > 0 {
		gh.triggerGesture(GestureSwipeDown)
	}
}

// triggerGesture triggers a gesture callback
func (gh *GestureHandler) triggerGesture(gesture GestureType) {
	if gh.onGesture != nil {
		gh.onGesture(gesture)
	}
}

// PullToRefreshWidget wraps content so a downward swipe reloads the
// collection. A cooldown absorbs repeated swipes while a reload runs.
type PullToRefreshWidget struct {
	*fyne.Container
	gestureHandler *GestureHandler
	refreshFunc    func()
	isRefreshing   bool
}

// NewPullToRefreshWidget creates a new pull-to-refresh wrapper
func NewPullToRefreshWidget(content fyne.CanvasObject, refreshFunc func()) *PullToRefreshWidget {
	ptr := &PullToRefreshWidget{
		Container:   fyne.NewContainer(content),
		refreshFunc: refreshFunc,
	}
	ptr.gestureHandler = NewGestureHandler(ptr.handleGesture)
	return ptr
}

// handleGesture maps a downward swipe to a refresh
func (ptr *PullToRefreshWidget) handleGesture(gesture GestureType) {
	if gesture == GestureSwipeDown && !ptr.isRefreshing {
		ptr.triggerRefresh()
	}
}

// triggerRefresh triggers the refresh action
func (ptr *PullToRefreshWidget) triggerRefresh() {
	if ptr.refreshFunc == nil || ptr.isRefreshing {
		return
	}
	ptr.isRefreshing = true
	ptr.refreshFunc()
	go func() {
		time.Sleep(RefreshCooldown)
		ptr.isRefreshing = false
	}()
}

// TouchDown handles touch down events
func (ptr *PullToRefreshWidget) TouchDown(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchDown(event)
}

// TouchUp handles touch up events
func (ptr *PullToRefreshWidget) TouchUp(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchUp(event)
}

// TouchCancel handles touch cancel events
func (ptr *PullToRefreshWidget) TouchCancel(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchCancel(event)
}
