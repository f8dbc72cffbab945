package crawler

// crawlState bundles the frontier, visited set, and scraped-page counter for
// a single crawl invocation. It is created at the top of Engine.Crawl and
// discarded when the crawl ends; nothing outlives the run. The engine loop is
// the only owner, so no locking is needed.
type crawlState struct {
	frontier []string
	visited  map[string]struct{}
	scraped  int
}

func newCrawlState(seed string) *crawlState {
	return &crawlState{
		frontier: []string{seed},
		visited:  make(map[string]struct{}),
	}
}

// popFront removes and returns the head of the frontier (FIFO, breadth-first).
func (s *crawlState) popFront() (string, bool) {
	if len(s.frontier) == 0 {
		return "", false
	}
	head := s.frontier[0]
	s.frontier = s.frontier[1:]
	return head, true
}

// enqueue appends candidate links that have not been visited yet and reports
// how many were added. Duplicates already sitting in the frontier are
// tolerated; the visited check at dequeue is the sole dedup guard.
func (s *crawlState) enqueue(links []string) int {
	added := 0
	for _, link := range links {
		if link == "" || s.isVisited(link) {
			continue
		}
		s.frontier = append(s.frontier, link)
		added++
	}
	return added
}

func (s *crawlState) isVisited(pageURL string) bool {
	_, ok := s.visited[pageURL]
	return ok
}

func (s *crawlState) markVisited(pageURL string) {
	s.visited[pageURL] = struct{}{}
}

func (s *crawlState) pending() int {
	return len(s.frontier)
}
