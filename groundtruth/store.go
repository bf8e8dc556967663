package groundtruth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/meshveil/socialgraph"
)

// Filename builds the on-disk name for a (N, seed, tierProb) key, per
// the external ground-truth interface: dots in the probability tokens
// are replaced with underscores so the name stays filesystem-safe.
func Filename(n int, seed int64, pIntimate, pFriend, pAcquaintance float64) string {
	return fmt.Sprintf(
		"graph_N%d_seed%d_%s-%s-%s.json",
		n, seed, probToken(pIntimate), probToken(pFriend), probToken(pAcquaintance),
	)
}

func probToken(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	return strings.ReplaceAll(s, ".", "_")
}

// LoadOrGenerate returns the graph for (n, params) from dir, generating
// and persisting it first if no record exists under that key. A missing
// record is not an error (spec's external-interfaces design): it is the
// ordinary first-run path.
func LoadOrGenerate(dir string, n int, params socialgraph.Params) (*socialgraph.Graph, *Record, error) {
	path := filepath.Join(dir, Filename(n, params.Seed, params.PIntimate, params.PFriend, params.PAcquaintance))

	if data, err := os.ReadFile(path); err == nil {
		rec, graph, perr := parseRecord(data)
		if perr != nil {
			return nil, nil, fmt.Errorf("groundtruth: corrupt record %s: %w", path, perr)
		}
		return graph, rec, nil
	} else if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("groundtruth: reading %s: %w", path, err)
	}

	graph, err := socialgraph.Build(n, params)
	if err != nil {
		return nil, nil, fmt.Errorf("groundtruth: building graph for %s: %w", path, err)
	}

	rec := toRecord(graph, n, params)
	if err := persist(dir, path, rec); err != nil {
		return nil, nil, err
	}
	return graph, rec, nil
}

func toRecord(g *socialgraph.Graph, n int, params socialgraph.Params) *Record {
	adjacency := make(map[string][]int, n)
	tierMap := make(map[string]map[string]string, n)
	for u := 0; u < n; u++ {
		adjacency[strconv.Itoa(u)] = append([]int(nil), g.Neighbors(u)...)
	}
	g.EachEdge(func(u, v int, tier socialgraph.Tier) {
		uk, vk := strconv.Itoa(u), strconv.Itoa(v)
		if tierMap[uk] == nil {
			tierMap[uk] = make(map[string]string)
		}
		if tierMap[vk] == nil {
			tierMap[vk] = make(map[string]string)
		}
		tierMap[uk][vk] = tier.String()
		tierMap[vk][uk] = tier.String()
	})

	return &Record{
		Metadata: Metadata{
			N:    n,
			Seed: params.Seed,
			TierProbabilities: TierProbabilities{
				Intimate:     params.PIntimate,
				Friend:       params.PFriend,
				Acquaintance: params.PAcquaintance,
			},
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Version:     Version,
		},
		Graph:      adjacency,
		TierMap:    tierMap,
		Statistics: computeStatistics(g),
	}
}

// parseRecord reconstructs a Graph from a persisted record's tierMap.
// The graph adjacency field is not itself authoritative here: tierMap
// alone determines every edge (and its tier), since the two fields are
// written from the same source and must agree.
func parseRecord(data []byte) (*Record, *socialgraph.Graph, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, err
	}

	edges, err := edgesFromTierMap(rec.TierMap)
	if err != nil {
		return nil, nil, err
	}
	return &rec, socialgraph.FromEdges(rec.Metadata.N, edges), nil
}

func edgesFromTierMap(tierMap map[string]map[string]string) ([]socialgraph.Edge, error) {
	type seenPair struct{ a, b int }
	seen := make(map[seenPair]bool)

	keys := make([]string, 0, len(tierMap))
	for k := range tierMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var edges []socialgraph.Edge
	for _, uk := range keys {
		u, err := strconv.Atoi(uk)
		if err != nil {
			return nil, fmt.Errorf("groundtruth: invalid node id %q: %w", uk, err)
		}
		neighborKeys := make([]string, 0, len(tierMap[uk]))
		for vk := range tierMap[uk] {
			neighborKeys = append(neighborKeys, vk)
		}
		sort.Strings(neighborKeys)

		for _, vk := range neighborKeys {
			v, err := strconv.Atoi(vk)
			if err != nil {
				return nil, fmt.Errorf("groundtruth: invalid node id %q: %w", vk, err)
			}
			pair := seenPair{a: u, b: v}
			if u > v {
				pair = seenPair{a: v, b: u}
			}
			if seen[pair] {
				continue
			}
			seen[pair] = true

			tier, err := tierFromString(tierMap[uk][vk])
			if err != nil {
				return nil, err
			}
			edges = append(edges, socialgraph.Edge{U: u, V: v, Tier: tier})
		}
	}
	return edges, nil
}

func tierFromString(s string) (socialgraph.Tier, error) {
	switch s {
	case "intimate":
		return socialgraph.Intimate, nil
	case "friend":
		return socialgraph.Friend, nil
	case "acquaintance":
		return socialgraph.Acquaintance, nil
	default:
		return 0, fmt.Errorf("groundtruth: unknown tier %q", s)
	}
}

// persist writes rec to path, creating dir if necessary. Map keys are
// serialized in sorted order by encoding/json, so two independent
// generators for the same key produce identical graph, tierMap, and
// statistics content; only metadata.generatedAt differs between them.
func persist(dir, path string, rec *Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("groundtruth: creating %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("groundtruth: marshaling record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("groundtruth: writing %s: %w", path, err)
	}
	return nil
}
