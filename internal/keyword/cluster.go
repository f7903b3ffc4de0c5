package keyword

import (
	"math"
	"sort"

	"github.com/blevesearch/go-porterstemmer"

	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/textutil"
	"github.com/hyperjump/kousei/pkg/utils"
)

// Clustering parameters. The iteration cap bounds k-means so a pathological
// input cannot loop; assignments converge long before it in practice.
const (
	minClusterSections = 3
	minSectionWords    = 10
	minTermLen         = 4
	maxVocabulary      = 100
	maxClusterTerms    = 5
	kmeansIterations   = 20
)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "will": true,
	"with": true, "you": true, "your": true, "this": true, "their": true,
	"but": true, "or": true, "not": true, "can": true, "have": true,
	"all": true, "when": true, "there": true, "been": true, "if": true,
	"more": true, "so": true, "about": true, "what": true, "which": true,
	"who": true, "would": true, "could": true,
}

// term is one clustering candidate: a stemmed word with its per-section
// tf-idf vector.
type term struct {
	stem   string
	freq   int
	vector []float64
}

// clusterSections groups the document's recurring terms into topic clusters
// using tf-idf vectors over heading-delimited sections and k-means with a
// frequency-ranked deterministic seed. Documents with fewer than three
// substantial sections return no clusters.
func clusterSections(structure *models.Structure, maxClusters int) []models.Cluster {
	var sections []string
	for _, sec := range structure.Sections {
		text := sec.Heading + " " + sec.Content
		if textutil.WordCount(text) > minSectionWords {
			sections = append(sections, text)
		}
	}
	if len(sections) < minClusterSections {
		return nil
	}

	terms := buildTerms(sections)
	if len(terms) == 0 {
		return nil
	}

	k := len(sections) / 2
	if k > maxClusters {
		k = maxClusters
	}
	if k < 2 {
		k = 2
	}
	if k > len(terms) {
		k = len(terms)
	}

	assignments := kmeans(terms, k)
	return collectClusters(terms, assignments, k)
}

// buildTerms extracts the stemmed vocabulary and its tf-idf vectors. The
// vocabulary is capped at the most frequent terms, ties broken by stem, so
// the same document always yields the same term list in the same order.
func buildTerms(sections []string) []term {
	counts := make([]map[string]int, len(sections))
	totals := make([]int, len(sections))
	freq := make(map[string]int)

	for i, sec := range sections {
		counts[i] = make(map[string]int)
		for _, w := range textutil.Words(sec) {
			if len(w) < minTermLen || stopWords[w] {
				continue
			}
			stem := porterstemmer.StemString(w)
			if stem == "" {
				continue
			}
			counts[i][stem]++
			totals[i]++
			freq[stem]++
		}
	}

	stems := make([]string, 0, len(freq))
	for s := range freq {
		stems = append(stems, s)
	}
	sort.Slice(stems, func(i, j int) bool {
		if freq[stems[i]] != freq[stems[j]] {
			return freq[stems[i]] > freq[stems[j]]
		}
		return stems[i] < stems[j]
	})
	if len(stems) > maxVocabulary {
		stems = stems[:maxVocabulary]
	}

	terms := make([]term, 0, len(stems))
	for _, s := range stems {
		df := 0
		for i := range sections {
			if counts[i][s] > 0 {
				df++
			}
		}
		idf := math.Log(float64(len(sections))/float64(df)) + 1
		vec := make([]float64, len(sections))
		for i := range sections {
			if totals[i] > 0 {
				vec[i] = float64(counts[i][s]) / float64(totals[i]) * idf
			}
		}
		terms = append(terms, term{stem: s, freq: freq[s], vector: vec})
	}
	return terms
}

// kmeans clusters the term vectors. Seeds are the k most frequent terms
// (terms arrive frequency-sorted), assignment ties go to the lowest centroid
// index, and iteration order is the stable term order, so the result is
// fully deterministic.
func kmeans(terms []term, k int) []int {
	dims := len(terms[0].vector)
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), terms[i].vector...)
	}

	assignments := make([]int, len(terms))
	for iter := 0; iter < kmeansIterations; iter++ {
		changed := false
		for i, t := range terms {
			best, bestDist := 0, math.MaxFloat64
			for c := range centroids {
				if d := sqDist(t.vector, centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		sizes := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, t := range terms {
			c := assignments[i]
			sizes[c]++
			for d, v := range t.vector {
				sums[c][d] += v
			}
		}
		for c := range centroids {
			if sizes[c] == 0 {
				continue // empty cluster keeps its previous centroid
			}
			for d := range sums[c] {
				centroids[c][d] = sums[c][d] / float64(sizes[c])
			}
		}
	}
	return assignments
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// collectClusters turns assignments into labelled clusters. Each cluster is
// labelled by its most frequent term; Weight is the cluster's share of total
// term frequency. Clusters are ordered by weight, then label.
func collectClusters(terms []term, assignments []int, k int) []models.Cluster {
	grouped := make([][]term, k)
	for i, t := range terms {
		c := assignments[i]
		grouped[c] = append(grouped[c], t)
	}

	totalFreq := 0
	for _, t := range terms {
		totalFreq += t.freq
	}

	var clusters []models.Cluster
	for _, group := range grouped {
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if group[i].freq != group[j].freq {
				return group[i].freq > group[j].freq
			}
			return group[i].stem < group[j].stem
		})
		top := group
		if len(top) > maxClusterTerms {
			top = top[:maxClusterTerms]
		}
		names := make([]string, len(top))
		clusterFreq := 0
		for i, t := range top {
			names[i] = t.stem
		}
		for _, t := range group {
			clusterFreq += t.freq
		}
		clusters = append(clusters, models.Cluster{
			Label:  group[0].stem,
			Terms:  names,
			Weight: utils.Round2(float64(clusterFreq) / float64(totalFreq)),
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].Weight != clusters[j].Weight {
			return clusters[i].Weight > clusters[j].Weight
		}
		return clusters[i].Label < clusters[j].Label
	})
	return clusters
}
