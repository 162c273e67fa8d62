package chromefile

import "github.com/fsnotify/fsnotify"

func fsnotifyEvent(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}
