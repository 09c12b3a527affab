package external

// SourceSRD is the source segment of every key the SRD client produces
const SourceSRD = "srd"

// FetchCorpusInput narrows what FetchCorpus pulls from the API
type FetchCorpusInput struct {
	// Level keeps only spells of this level
	Level *int

	// Class keeps only spells on this class's list, by API index ("wizard")
	Class string
}
