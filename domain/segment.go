package domain

import "fmt"

const NumSegments = 5

// segmentNames maps the clustering model's labels to the segment names the
// model was published with. It must change together with the clustering artifact.
var segmentNames = [NumSegments]string{
	0: "Reliable Daily Drivers (Standard)",
	1: "Silent Newcomers (New/Stagnant)",
	2: "The Popular One (Best Seller)",
	3: "High-End Luxury (Premium)",
	4: "The Legends (Viral)",
}

// SegmentLabel looks up the human-readable name for a cluster id.
func SegmentLabel(clusterID int) (string, error) {
	if clusterID < 0 || clusterID >= NumSegments {
		return "", fmt.Errorf("%w: %d", ErrUnknownCluster, clusterID)
	}
	return segmentNames[clusterID], nil
}

// Segments returns the full segment table ordered by cluster id.
func Segments() []ClusterAssignment {
	out := make([]ClusterAssignment, 0, NumSegments)
	for id, name := range segmentNames {
		out = append(out, ClusterAssignment{ClusterID: id, ClusterLabel: name})
	}
	return out
}
