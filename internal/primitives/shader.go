package primitives

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS: mode 0 Phong, 1 glass, 2 emissive. Light kinds: 0 directional, 1 point, 2 spot.
	litFS = `#version 330
#define MAX_LIGHTS 8
struct Light {
  int kind;
  vec3 position;
  vec3 direction;
  vec3 color;
  float intensity;
  float range;
  float decay;
  float cosInner;
  float cosOuter;
};
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambientColor;
uniform vec3 skyColor;
uniform vec3 groundColor;
uniform int lightCount;
uniform Light lights[MAX_LIGHTS];
uniform int mode;
uniform vec3 specularColor;
uniform float shininess;
uniform float opacity;
uniform vec3 emissive;
uniform vec3 attenuationColor;
out vec4 finalColor;

float falloff(float d, float range, float decay) {
  float a = 1.0 / max(pow(d, decay), 0.01);
  if (range > 0.0) {
    float w = clamp(1.0 - pow(d / range, 4.0), 0.0, 1.0);
    a *= w * w;
  }
  return a;
}

void main() {
  if (mode == 2) {
    finalColor = vec4(colDiffuse.rgb * 0.1 + emissive, 1.0);
    return;
  }
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 base = colDiffuse.rgb;
  vec3 hemi = mix(groundColor, skyColor, N.y * 0.5 + 0.5);
  vec3 color = (ambientColor + hemi) * base;
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (i >= lightCount) break;
    Light l = lights[i];
    vec3 L;
    float k = l.intensity;
    if (l.kind == 0) {
      L = -normalize(l.direction);
    } else {
      vec3 d = l.position - fragPosition;
      float dist = length(d);
      L = d / max(dist, 0.0001);
      k *= falloff(dist, l.range, l.decay);
      if (l.kind == 2) {
        float c = dot(-L, normalize(l.direction));
        k *= smoothstep(l.cosOuter, l.cosInner, c);
      }
    }
    float NdotL = max(dot(N, L), 0.0);
    vec3 H = normalize(L + V);
    float spec = NdotL > 0.0 ? pow(max(dot(N, H), 0.0), max(shininess, 1.0)) : 0.0;
    color += l.color * k * (base * NdotL + specularColor * spec);
  }
  float alpha = opacity;
  if (mode == 1) {
    float fresnel = pow(1.0 - max(dot(N, V), 0.0), 5.0);
    color = mix(color * attenuationColor, vec3(1.0), fresnel * 0.8);
    alpha = clamp(opacity + fresnel * 0.4, 0.0, 1.0);
  }
  finalColor = vec4(color + emissive, alpha);
}
`
)
