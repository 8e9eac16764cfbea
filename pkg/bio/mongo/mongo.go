/*
Package mongo reads historical samples out of a MongoDB collection,
for bulk import into a forest. Samples are stored one document per
sample, with feature codes keyed by their decimal string (BSON map
keys cannot be integers).
*/
package mongo

import (
	"fmt"
	"strconv"

	mgo "gopkg.in/mgo.v2"

	"github.com/pbanos/irforest/sample"
)

const samplesCollectionName = "samples"

// Source reads samples sequentially out of a MongoDB database.
type Source struct {
	session *mgo.Session
}

// Open takes a MongoDB database session and returns a Source that
// reads from the default database for that session, or an error if
// it fails to ensure the samples collection's indexes.
func Open(session *mgo.Session) (*Source, error) {
	src := &Source{session}
	if err := src.ensureIndexes(); err != nil {
		return nil, err
	}
	return src, nil
}

// IterateSamples calls visit once per sample document in the
// collection, stopping and returning the first error either the
// decode or visit produces.
func (src *Source) IterateSamples(visit func(*sample.Sample) error) error {
	var doc struct {
		SUID  string             `bson:"suid"`
		Y     float64            `bson:"y"`
		Codes map[string]float64 `bson:"codes"`
	}
	iter := src.samplesCollection().Find(nil).Iter()
	defer iter.Close()
	for iter.Next(&doc) {
		codes := make(map[int]float64, len(doc.Codes))
		for k, v := range doc.Codes {
			code, err := strconv.Atoi(k)
			if err != nil {
				return fmt.Errorf("decoding code %q for sample %q: %v", k, doc.SUID, err)
			}
			codes[code] = v
		}
		if err := visit(&sample.Sample{SUID: doc.SUID, Y: doc.Y, XCodes: codes}); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (src *Source) ensureIndexes() error {
	index := mgo.Index{
		Key:        []string{"suid"},
		Unique:     true,
		Background: true,
	}
	return src.samplesCollection().EnsureIndex(index)
}

func (src *Source) samplesCollection() *mgo.Collection {
	return src.session.DB("").C(samplesCollectionName)
}
