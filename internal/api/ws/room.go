package ws

// Feed maintains the active subscribers of one room and fans events out to
// them. All state changes go through the run loop, so no locks are needed
// inside a feed.
type Feed struct {
	roomID     uint
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	shutdown   chan struct{}
	done       chan struct{}
}

func newFeed(roomID uint) *Feed {
	f := &Feed{
		roomID:     roomID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
	}
	go f.run()
	return f
}

// run is the feed event loop; it serializes subscriber changes and fan-out.
func (f *Feed) run() {
	for {
		select {
		case c := <-f.register:
			f.clients[c] = true
		case c := <-f.unregister:
			if _, ok := f.clients[c]; ok {
				delete(f.clients, c)
				close(c.send)
			}
		case msg := <-f.broadcast:
			for c := range f.clients {
				select {
				case c.send <- msg:
				default:
					// slow client; drop
				}
			}
		case <-f.shutdown:
			for c := range f.clients {
				delete(f.clients, c)
				close(c.send)
			}
			close(f.done)
			return
		}
	}
}

// subscribe attaches a client. It reports false when the feed shut down
// before the client could attach, so callers never block on a dead run loop.
func (f *Feed) subscribe(c *Client) bool {
	select {
	case f.register <- c:
		return true
	case <-f.done:
		return false
	}
}

// drop detaches a client; safe to call after the feed has shut down.
func (f *Feed) drop(c *Client) {
	select {
	case f.unregister <- c:
	case <-f.done:
	}
}
