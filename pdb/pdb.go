package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/TuftsBCB/structure"
)

// AminoThreeToOne is a map from three letter amino acids to their
// corresponding single letter representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// Entry represents a PDB file. Every record of the file is kept, so that an
// Entry can be written back out with only the atom coordinates changed.
type Entry struct {
	Path   string
	IdCode string

	// Residues holds every residue with ATOM or HETATM records, in the order
	// in which they appear in the file.
	Residues []*Residue

	records []record
}

// record is a single line of a PDB file. If the line is an atom record, atom
// points to the atom it was parsed into.
type record struct {
	line []byte
	atom *Atom
}

// Residue is a group of consecutive atom records that share a model, a chain,
// a residue sequence number, an insertion code and a residue name.
type Residue struct {
	Name          string
	Chain         byte
	SequenceNum   int
	InsertionCode byte
	Model         int
	Atoms         []*Atom
}

// Atom is a single ATOM or HETATM record.
type Atom struct {
	Serial int
	Name   string
	AltLoc byte
	Het    bool
	structure.Coords
}

// New creates a new PDB Entry from a file. If the file cannot be read, or there
// is an error parsing the PDB file, an error is returned.
//
// If the file name ends with ".gz", gzip decompression will be used.
func New(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f

	// If the file is gzipped, use the gzip decompressor.
	if path.Ext(fileName) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader, fileName)
}

// Read reads a PDB entry from the reader given. The name is used as the
// entry's Path and in error messages.
func Read(r io.Reader, name string) (*Entry, error) {
	entry := &Entry{Path: name}
	model := 0
	var last *Residue

	// Now traverse each line, and process it according to the record name.
	breader := bufio.NewReaderSize(r, 1000)
	for lineNum := 1; ; lineNum++ {
		line, err := readLine(breader)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		rec := record{line: line}

		// The record name is always in the first six columns.
		switch recordName(line) {
		case "HEADER":
			if len(line) >= 66 {
				entry.IdCode = strings.TrimSpace(string(line[62:66]))
			}
		case "MODEL":
			model = 0
			if len(line) > 10 {
				num, err := strconv.Atoi(strings.TrimSpace(string(line[10:])))
				if err == nil {
					model = num
				}
			}
			last = nil
		case "ENDMDL":
			last = nil
		case "ATOM", "HETATM":
			atom, res, err := parseAtom(line)
			if err != nil {
				return nil, fmt.Errorf("Could not parse line %d of '%s': %s",
					lineNum, name, err)
			}
			res.Model = model
			if last == nil || !last.sameAs(res) {
				entry.Residues = append(entry.Residues, res)
				last = res
			}
			last.Atoms = append(last.Atoms, atom)
			rec.atom = atom
		}
		entry.records = append(entry.records, rec)
	}
	return entry, nil
}

// readLine returns the next line without its line terminator. Lines longer
// than the reader's buffer are stitched together.
func readLine(r *bufio.Reader) ([]byte, error) {
	var line []byte
	for {
		part, isPrefix, err := r.ReadLine()
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return line, nil
			}
			return nil, err
		}

		// ReadLine reuses its buffer, so copy.
		line = append(line, part...)
		if !isPrefix {
			return line, nil
		}
	}
}

func recordName(line []byte) string {
	if len(line) > 6 {
		line = line[0:6]
	}
	return strings.TrimSpace(string(line))
}

// parseAtom reads the fixed columns of an ATOM or HETATM record. The residue
// returned has no atoms; it is used to decide whether the atom starts a new
// residue.
func parseAtom(line []byte) (*Atom, *Residue, error) {
	if len(line) < 54 {
		return nil, nil, fmt.Errorf("atom record has %d columns; "+
			"need at least 54", len(line))
	}

	atom := &Atom{
		Name:   strings.TrimSpace(string(line[12:16])),
		AltLoc: line[16],
		Het:    recordName(line) == "HETATM",
	}
	if serial, err := strconv.Atoi(strings.TrimSpace(string(line[6:11]))); err == nil {
		atom.Serial = serial
	}

	// Coordinates are in columns 31-38, 39-46 and 47-54.
	var err error
	coords := [3]float64{}
	for i := 0; i < 3; i++ {
		start := 30 + 8*i
		field := strings.TrimSpace(string(line[start : start+8]))
		coords[i], err = strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad coordinate '%s'", field)
		}
	}
	atom.X, atom.Y, atom.Z = coords[0], coords[1], coords[2]

	// The residue sequence number is in columns 23-26.
	snum := strings.TrimSpace(string(line[22:26]))
	seqNum, err := strconv.Atoi(snum)
	if err != nil {
		return nil, nil, fmt.Errorf("bad residue sequence number '%s'", snum)
	}
	res := &Residue{
		Name:          strings.TrimSpace(string(line[17:20])),
		Chain:         line[21],
		SequenceNum:   seqNum,
		InsertionCode: line[26],
	}
	return atom, res, nil
}

func (r *Residue) sameAs(other *Residue) bool {
	return r.Model == other.Model &&
		r.Chain == other.Chain &&
		r.SequenceNum == other.SequenceNum &&
		r.InsertionCode == other.InsertionCode &&
		r.Name == other.Name
}

// Write writes every record of the entry to w. Atom records are written with
// their current coordinates; all other columns are left as they were read.
func (e *Entry) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, rec := range e.records {
		line := rec.line
		if rec.atom != nil {
			line = rec.atom.format(line)
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// format returns a copy of an atom record with columns 31-54 replaced by the
// atom's coordinates.
func (a *Atom) format(line []byte) []byte {
	coords := fmt.Sprintf("%8.3f%8.3f%8.3f", a.X, a.Y, a.Z)
	out := make([]byte, 0, len(line))
	out = append(out, line[0:30]...)
	out = append(out, coords...)
	out = append(out, line[54:]...)
	return out
}

// NumAtoms returns the number of atom records in the entry.
func (e *Entry) NumAtoms() int {
	n := 0
	for _, res := range e.Residues {
		n += len(res.Atoms)
	}
	return n
}

// String returns the name of the entry and a one line summary per chain of
// the first model.
func (e *Entry) String() string {
	lines := []string{fmt.Sprintf("%s (%d residues, %d atoms)",
		e.Name(), len(e.Residues), e.NumAtoms())}

	var chain byte
	var seq []byte
	flush := func() {
		if len(seq) > 0 {
			lines = append(lines, fmt.Sprintf("> Chain %c :: length %d\n%s",
				chain, len(seq), string(seq)))
		}
	}
	for i, res := range e.Residues {
		if res.Model != e.Residues[0].Model {
			break
		}
		if i == 0 || res.Chain != chain {
			flush()
			chain, seq = res.Chain, nil
		}
		if single, ok := AminoThreeToOne[res.Name]; ok {
			seq = append(seq, single)
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

// Name returns the id code of the entry if it has one, and its path
// otherwise.
func (e *Entry) Name() string {
	if len(e.IdCode) > 0 {
		return e.IdCode
	}
	return path.Base(e.Path)
}

// Type returns the three letter residue name.
func (r *Residue) Type() string {
	return r.Name
}

// Ident returns the chain identifier, residue sequence number and insertion
// code of the residue.
func (r *Residue) Ident() (byte, int, byte) {
	return r.Chain, r.SequenceNum, r.InsertionCode
}

// Atom returns the coordinates of the first atom with the given name, or nil
// if there is no such atom.
//
// N.B. Alternate locations are not distinguished. The first record wins.
func (r *Residue) Atom(name string) *structure.Coords {
	for _, atom := range r.Atoms {
		if atom.Name == name {
			return &atom.Coords
		}
	}
	return nil
}

// String returns the residue name and its identifier, e.g., "LEU A42".
func (r *Residue) String() string {
	s := fmt.Sprintf("%s %c%d", r.Name, r.Chain, r.SequenceNum)
	if r.InsertionCode != ' ' {
		s += string(r.InsertionCode)
	}
	return s
}
