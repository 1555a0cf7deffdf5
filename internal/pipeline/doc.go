// Package pipeline runs collaborator stages over a record in sequence.
//
// A typical run binds a desired path, lets a field solver fill the field,
// observed path and state, lets the noise analyzer fill the statistics, and
// finally reduces the record with metrics:
//
//	rec, _ := record.FromTable(consts, table)
//	p := pipeline.New(log, solver, analyzer)
//	for _, m := range metrics.Default() {
//	    p.AddMetric(m)
//	}
//	result, err := p.Run(ctx, rec)
//
// # Thread Safety
//
// A Pipeline is not safe for concurrent use. Only one stage touches the
// record at a time.
package pipeline
