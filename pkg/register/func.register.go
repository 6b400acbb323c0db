package register

import "sync"

// funcRegister collects handlers contributed by package init functions,
// keyed by a marker type such as sqlstore.RegisterKey{}.
type funcRegister struct {
	handlers map[any][]any
	locker   sync.Mutex
}

var fr = &funcRegister{
	handlers: make(map[any][]any),
}

type Handler[T any] func(T)

func RegisterFunc[T any](key any, handler Handler[T]) {
	fr.locker.Lock()
	fr.handlers[key] = append(fr.handlers[key], handler)
	fr.locker.Unlock()
}

// ResolveFuncHandlers returns the handlers registered under key whose
// argument type is T, in registration order.
func ResolveFuncHandlers[T any](key any) []Handler[T] {
	fr.locker.Lock()
	defer fr.locker.Unlock()

	var result []Handler[T]
	for _, v := range fr.handlers[key] {
		if h, ok := v.(Handler[T]); ok {
			result = append(result, h)
		}
	}
	return result
}

// Run calls every handler registered under key with arg.
func Run[T any](key any, arg T) {
	for _, h := range ResolveFuncHandlers[T](key) {
		h(arg)
	}
}
