package render

import (
	"sort"

	"helm.sh/helm/v3/pkg/releaseutil"

	"github.com/imamik/webstamp/internal/config"
)

// kindRank positions each kind in Helm's install order. Kinds Helm does
// not know, like ServiceMonitor, sort last.
var kindRank = func() map[string]int {
	ranks := make(map[string]int, len(releaseutil.InstallOrder))
	for i, kind := range releaseutil.InstallOrder {
		ranks[kind] = i
	}
	return ranks
}()

func rank(kind string) int {
	if r, ok := kindRank[kind]; ok {
		return r
	}
	return len(kindRank)
}

// Render builds the complete manifest set for a defaulted, validated
// configuration. The ConfigMap and Secret are encoded first so their
// content checksums can flow into the Deployment's pod annotations;
// everything is then sorted into apply order.
func Render(cfg *config.Config) (*Manifest, error) {
	m := &Manifest{
		Release:   cfg.Name,
		Namespace: cfg.Namespace,
	}

	var sums Checksums
	cm := ConfigMap(cfg)
	cmDoc, err := newDocument("ConfigMap", cm.Name, cm)
	if err != nil {
		return nil, err
	}
	sums.Config = Checksum(cmDoc.Bytes)
	m.Documents = append(m.Documents, cmDoc)
	if sec := AppSecret(cfg); sec != nil {
		doc, err := newDocument("Secret", sec.Name, sec)
		if err != nil {
			return nil, err
		}
		sums.Secret = Checksum(doc.Bytes)
		m.Documents = append(m.Documents, doc)
	}

	// The basic auth Secret is read by the ingress controller, not the
	// pods, so it stays out of the checksum annotations.
	if sec := BasicAuthSecret(cfg); sec != nil {
		if err := m.add("Secret", sec.Name, sec); err != nil {
			return nil, err
		}
	}
	if sa := ServiceAccount(cfg); sa != nil {
		if err := m.add("ServiceAccount", sa.Name, sa); err != nil {
			return nil, err
		}
	}

	dep := Deployment(cfg, sums)
	if err := m.add("Deployment", dep.Name, dep); err != nil {
		return nil, err
	}
	svc := Service(cfg)
	if err := m.add("Service", svc.Name, svc); err != nil {
		return nil, err
	}

	if ing := Ingress(cfg); ing != nil {
		if err := m.add("Ingress", ing.Name, ing); err != nil {
			return nil, err
		}
	}
	if hpa := HorizontalPodAutoscaler(cfg); hpa != nil {
		if err := m.add("HorizontalPodAutoscaler", hpa.Name, hpa); err != nil {
			return nil, err
		}
	}
	if pdb := PodDisruptionBudget(cfg); pdb != nil {
		if err := m.add("PodDisruptionBudget", pdb.Name, pdb); err != nil {
			return nil, err
		}
	}
	if np := NetworkPolicy(cfg); np != nil {
		if err := m.add("NetworkPolicy", np.Name, np); err != nil {
			return nil, err
		}
	}
	if role := Role(cfg); role != nil {
		if err := m.add("Role", role.Name, role); err != nil {
			return nil, err
		}
	}
	if rb := RoleBinding(cfg); rb != nil {
		if err := m.add("RoleBinding", rb.Name, rb); err != nil {
			return nil, err
		}
	}
	if sm := ServiceMonitor(cfg); sm != nil {
		if err := m.add("ServiceMonitor", sm.GetName(), sm); err != nil {
			return nil, err
		}
	}

	sortDocuments(m.Documents)
	return m, nil
}

func (m *Manifest) add(kind, name string, obj any) error {
	doc, err := newDocument(kind, name, obj)
	if err != nil {
		return err
	}
	m.Documents = append(m.Documents, doc)
	return nil
}

// sortDocuments orders documents by install rank, then kind, then name,
// keeping the output stable for identical inputs.
func sortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		ri, rj := rank(docs[i].Kind), rank(docs[j].Kind)
		if ri != rj {
			return ri < rj
		}
		if docs[i].Kind != docs[j].Kind {
			return docs[i].Kind < docs[j].Kind
		}
		return docs[i].Name < docs[j].Name
	})
}
