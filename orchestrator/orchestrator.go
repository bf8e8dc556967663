package orchestrator

import (
	"github.com/google/uuid"

	"github.com/katalvlaran/meshveil/conversation"
	"github.com/katalvlaran/meshveil/cover"
	"github.com/katalvlaran/meshveil/rng"
	"github.com/katalvlaran/meshveil/routing"
	"github.com/katalvlaran/meshveil/socialgraph"
	"github.com/katalvlaran/meshveil/temporal"
)

// hopRecord is one scheduled future link traversal, indexed by the epoch
// at which it lands (spec.md §4.7 step 1: "record per-hop future link
// counts").
type hopRecord struct {
	a, b int
}

// Orchestrator drives one experiment's epoch loop (spec component C8).
// It owns users, the social graph, the sent log, and the routing,
// conversation, and cover managers; nothing it owns holds a back-pointer
// to the orchestrator itself (spec.md §9).
type Orchestrator struct {
	params Params
	graph  *socialgraph.Graph
	users  []*User
	edges  []socialgraph.Pair

	source      *rng.Source // orchestrator stream: routing and reply decisions
	tempSource  *rng.Source // isolated temporal stream (spec.md §4.1, §9)
	coverSource *rng.Source // isolated cover-traffic stream (spec.md §9)

	tracker      *routing.DiversityTracker // usage of real sends' paths
	coverTracker *routing.DiversityTracker // usage of dummy paths, kept apart from tracker
	convMgr      *conversation.Manager
	coverMgr     *cover.Manager

	subEpochEvents map[int][]int
	pendingHops    map[int][]hopRecord
	sentLog        map[int][]Message

	observer AdversaryObserver
}

// New builds a fresh experiment: a social graph, sampled per-user rates,
// a sub-epoch event schedule, and empty per-user state. The temporal and
// cover streams are seeded identically to the orchestrator stream but
// advanced independently, so toggling cover traffic never perturbs
// routing or reply decisions (spec.md §9: "dual RNG streams" — every
// cover-traffic draw, including the dummy messages' own path selection,
// is made from coverSource, never from source).
func New(n int, params Params, seed int64, observer AdversaryObserver) (*Orchestrator, error) {
	graphParams := params.GraphParams
	graphParams.Seed = seed // C2 shares the experiment seed (spec.md §4.1)
	graph, err := socialgraph.Build(n, graphParams)
	if err != nil {
		return nil, err
	}

	tempSource := rng.New(seed)
	rates := temporal.SampleUserMeans(n, params.RateParams, tempSource)
	events := temporal.GenerateEventsForHours(rates, params.HorizonHours, tempSource)
	subEpochEvents := temporal.Distribute(events, params.HorizonHours, params.DistributorParams, tempSource)

	users := make([]*User, n)
	for i := 0; i < n; i++ {
		users[i] = newUser(i)
	}

	var edges []socialgraph.Pair
	graph.EachEdge(func(u, v int, _ socialgraph.Tier) {
		edges = append(edges, socialgraph.NewPair(u, v))
	})

	var coverMgr *cover.Manager
	if params.CoverEnabled {
		coverMgr = cover.NewManager(params.CoverParams)
	}

	return &Orchestrator{
		params:         params,
		graph:          graph,
		users:          users,
		edges:          edges,
		source:         rng.New(seed),
		tempSource:     tempSource,
		coverSource:    rng.New(seed),
		tracker:        routing.NewDiversityTracker(),
		coverTracker:   routing.NewDiversityTracker(),
		convMgr:        conversation.NewManager(),
		coverMgr:       coverMgr,
		subEpochEvents: subEpochEvents,
		pendingHops:    make(map[int][]hopRecord),
		sentLog:        make(map[int][]Message),
		observer:       observer,
	}, nil
}

// Graph returns the read-only social graph backing this experiment.
func (o *Orchestrator) Graph() *socialgraph.Graph { return o.graph }

// SentLog returns the per-epoch message log accumulated by Run.
func (o *Orchestrator) SentLog() map[int][]Message { return o.sentLog }

func (o *Orchestrator) subEpochsPerHour() int {
	if o.params.DistributorParams.SubEpochsPerHour > 0 {
		return o.params.DistributorParams.SubEpochsPerHour
	}
	return 6
}

// Run drives the full epoch loop over [0, T·subEpochsPerHour) and
// returns the flattened, epoch-ordered message log (spec.md §4.7).
func (o *Orchestrator) Run() []Message {
	sph := o.subEpochsPerHour()
	total := o.params.HorizonHours * sph

	for se := 0; se < total; se++ {
		t := se / sph

		o.processReplies(se, t)
		o.processNewSends(se, t)

		if o.params.CoverEnabled && se%sph == 0 {
			o.injectCover(t)
		}

		if se%sph == sph-1 {
			o.materialize(t)
		}
	}

	var all []Message
	for t := 0; t < o.params.HorizonHours; t++ {
		all = append(all, o.sentLog[t]...)
	}
	return all
}

// processReplies implements spec.md §4.7 step 1.
func (o *Orchestrator) processReplies(se, t int) {
	for _, u := range o.users {
		if len(u.ReplyQueue) == 0 {
			continue
		}
		kept := u.ReplyQueue[:0]
		for _, entry := range u.ReplyQueue {
			if entry.SubEpoch != se {
				kept = append(kept, entry)
				continue
			}
			thread := o.convMgr.GetOrCreate(u.ID, entry.To, t)
			if !thread.ShouldContinue(t, o.source) {
				continue // purged: dropped from the queue, nothing emitted
			}
			if o.send(u.ID, entry.To, t, true) {
				thread.RecordMessage(t)
				o.scheduleReply(entry.To, u.ID, t) // counter-reply, recipient→sender
			}
		}
		u.ReplyQueue = kept
	}
}

// processNewSends implements spec.md §4.7 step 2.
func (o *Orchestrator) processNewSends(se, t int) {
	for _, uid := range o.subEpochEvents[se] {
		neighbors := o.graph.Neighbors(uid)
		if len(neighbors) == 0 {
			continue // isolated node: never a sender
		}
		recipient := o.pickRecipient(uid, neighbors)
		if o.send(uid, recipient, t, false) {
			o.scheduleReply(recipient, uid, t)
		}
	}
}

// pickRecipient chooses among uid's neighbors by tier-weighted sampling
// (spec.md §4.7 step 2: intimate 3.0, friend 1.5, acquaintance 1.0).
func (o *Orchestrator) pickRecipient(uid int, neighbors []int) int {
	total := 0.0
	weights := make([]float64, len(neighbors))
	for i, v := range neighbors {
		tier, _ := o.graph.TierOf(uid, v)
		weights[i] = tierWeight(tier)
		total += weights[i]
	}
	r := o.source.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return neighbors[i]
		}
	}
	return neighbors[len(neighbors)-1]
}

func tierWeight(t socialgraph.Tier) float64 {
	switch t {
	case socialgraph.Intimate:
		return 3.0
	case socialgraph.Friend:
		return 1.5
	default:
		return 1.0
	}
}

// send routes one message from sender to recipient at epoch t, logs it,
// notifies the adversary, records it on the cover manager, and records
// its per-hop future link counts. Returns false if no path exists within
// the hop budget (spec.md §7: "no path available" is a skip, not an
// error).
func (o *Orchestrator) send(sender, recipient, t int, isReply bool) bool {
	path, ok := routing.SelectPath(o.graph, sender, recipient, o.params.Hmax, o.tracker, o.source)
	if !ok {
		return false
	}
	msg := o.buildMessage(sender, recipient, t, path, false, isReply)
	o.logMessage(t, msg)
	return true
}

func (o *Orchestrator) buildMessage(sender, recipient, t int, path []int, dummy, isReply bool) Message {
	hopTimes := make([]int, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		ht := t + i
		if ht >= o.params.HorizonHours {
			break
		}
		hopTimes = append(hopTimes, ht)
	}
	return Message{
		ID:        uuid.New().String(),
		T:         t,
		Sender:    sender,
		Recipient: recipient,
		Path:      path,
		HopTimes:  hopTimes,
		Dummy:     dummy,
		IsReply:   isReply,
	}
}

// logMessage appends msg to the sent log, records its per-hop future
// link counts, notifies the adversary, and records it on the cover
// manager (spec.md §4.6: "real messages are also recorded on their
// originating link via recordRealMessage").
func (o *Orchestrator) logMessage(t int, msg Message) {
	o.sentLog[t] = append(o.sentLog[t], msg)
	o.recordHops(msg)
	o.observer.NoteSend(t, msg.Sender)
	if o.coverMgr != nil && !msg.Dummy {
		o.coverMgr.RecordRealMessage(msg.Sender, msg.Recipient, t)
	}
}

func (o *Orchestrator) recordHops(msg Message) {
	for i, ht := range msg.HopTimes {
		if i+1 >= len(msg.Path) {
			break
		}
		o.pendingHops[ht] = append(o.pendingHops[ht], hopRecord{a: msg.Path[i], b: msg.Path[i+1]})
	}
}

// scheduleReply samples a reply outcome for a just-completed send and,
// if one is scheduled, enqueues it on the replier's queue (spec.md
// §4.5: "On each successful send ... Enqueue on recipient").
func (o *Orchestrator) scheduleReply(replier, original, t int) {
	tier, ok := o.graph.TierOf(replier, original)
	if !ok {
		return
	}
	outcome, subEpoch := conversation.ScheduleReply(tier, t, o.source)
	if outcome == conversation.OutcomeNone {
		return
	}
	o.users[replier].ReplyQueue = append(o.users[replier].ReplyQueue, conversation.ReplyEntry{
		SubEpoch: subEpoch,
		From:     replier,
		To:       original,
		Kind:     outcome,
	})
}

// injectCover emits and routes cover traffic for epoch t
// (spec.md §4.7 step 3), only at sub-epoch 0 of each hour. Every random
// draw it makes — the manager's Gaussian/Poisson/coin-flip decisions and
// each dummy's own path selection — comes from coverSource, never from
// source, and dummy paths are recorded on coverTracker rather than on the
// tracker that scores real sends' diverse paths, so enabling or disabling
// cover traffic never shifts the sequence of routing/reply decisions made
// for real sends (spec.md §9: "dual RNG streams").
func (o *Orchestrator) injectCover(t int) {
	if o.coverMgr == nil {
		return
	}
	o.coverMgr.UpdateBaseline(t)
	dummies := o.coverMgr.Inject(t, o.graph, o.coverSource)
	for _, d := range dummies {
		path, ok := routing.SelectPath(o.graph, d.From, d.To, o.params.Hmax, o.coverTracker, o.coverSource)
		if !ok {
			continue
		}
		msg := o.buildMessage(d.From, d.To, t, path, true, false)
		o.sentLog[t] = append(o.sentLog[t], msg)
		o.recordHops(msg)
		o.observer.NoteSend(t, msg.Sender)
	}
}

// materialize builds per-link packet counts for everything whose hop
// lands on epoch t, folds in edge noise, updates last-contact, and
// notifies the adversary (spec.md §4.7 step 4). It always runs, even
// with an empty pending set, to preserve the strict per-epoch ordering
// noteSend(t,·) → noteContact(t,·) → inferEpoch(t) (spec.md §5).
func (o *Orchestrator) materialize(t int) {
	counts := make(map[socialgraph.Pair]int)
	for _, h := range o.pendingHops[t] {
		counts[socialgraph.NewPair(h.a, h.b)]++
	}
	delete(o.pendingHops, t)

	for i := 0; i < o.params.NoiseEdgesPerEpoch && len(o.edges) > 0; i++ {
		e := o.edges[o.source.Intn(len(o.edges))]
		counts[e]++
	}

	for pair, count := range counts {
		if count <= 0 {
			continue
		}
		o.users[pair.A].LastContact[pair.B] = t
		o.users[pair.B].LastContact[pair.A] = t
		o.observer.NoteContact(t, pair.A, pair.B, count)
	}

	o.observer.InferEpoch(t)
}
